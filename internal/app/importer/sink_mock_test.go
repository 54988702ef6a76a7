package importer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

var _ Sink = &SinkMock{}

type SinkMock struct {
	RunInTxFunc             func(ctx context.Context, fn func(ctx context.Context) error) error
	WriteDefinitionFunc     func(ctx context.Context, entryID uuid.UUID, source domain.SourceCode, d domain.ParsedDefinition) (uuid.UUID, error)
	WriteExampleFunc        func(ctx context.Context, parsedID uuid.UUID, text string) error
	WriteSynonymsFunc       func(ctx context.Context, parsedID uuid.UUID, texts []string) error
	WriteEtymologyFunc      func(ctx context.Context, entryID uuid.UUID, text string, languageCode string) error
	WriteCrossReferenceFunc func(ctx context.Context, parsedID uuid.UUID, target string, refType domain.ReferenceType) error
	WriteAliasFunc          func(ctx context.Context, parsedID uuid.UUID, alias string) error

	calls struct {
		RunInTx         []struct{}
		WriteDefinition []struct {
			EntryID uuid.UUID
			Source  domain.SourceCode
			D       domain.ParsedDefinition
		}
		WriteExample []struct {
			ParsedID uuid.UUID
			Text     string
		}
		WriteSynonyms []struct {
			ParsedID uuid.UUID
			Texts    []string
		}
		WriteEtymology []struct {
			EntryID      uuid.UUID
			Text         string
			LanguageCode string
		}
		WriteCrossReference []struct {
			ParsedID uuid.UUID
			Target   string
			RefType  domain.ReferenceType
		}
		WriteAlias []struct {
			ParsedID uuid.UUID
			Alias    string
		}
	}
	lockRunInTx             sync.RWMutex
	lockWriteDefinition     sync.RWMutex
	lockWriteExample        sync.RWMutex
	lockWriteSynonyms       sync.RWMutex
	lockWriteEtymology      sync.RWMutex
	lockWriteCrossReference sync.RWMutex
	lockWriteAlias          sync.RWMutex
}

func (mock *SinkMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("SinkMock.RunInTxFunc: method is nil but Sink.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *SinkMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *SinkMock) WriteDefinition(ctx context.Context, entryID uuid.UUID, source domain.SourceCode, d domain.ParsedDefinition) (uuid.UUID, error) {
	if mock.WriteDefinitionFunc == nil {
		panic("SinkMock.WriteDefinitionFunc: method is nil but Sink.WriteDefinition was just called")
	}
	callInfo := struct {
		EntryID uuid.UUID
		Source  domain.SourceCode
		D       domain.ParsedDefinition
	}{EntryID: entryID, Source: source, D: d}
	mock.lockWriteDefinition.Lock()
	mock.calls.WriteDefinition = append(mock.calls.WriteDefinition, callInfo)
	mock.lockWriteDefinition.Unlock()
	return mock.WriteDefinitionFunc(ctx, entryID, source, d)
}

func (mock *SinkMock) WriteDefinitionCalls() []struct {
	EntryID uuid.UUID
	Source  domain.SourceCode
	D       domain.ParsedDefinition
} {
	mock.lockWriteDefinition.RLock()
	calls := mock.calls.WriteDefinition
	mock.lockWriteDefinition.RUnlock()
	return calls
}

func (mock *SinkMock) WriteExample(ctx context.Context, parsedID uuid.UUID, text string) error {
	if mock.WriteExampleFunc == nil {
		panic("SinkMock.WriteExampleFunc: method is nil but Sink.WriteExample was just called")
	}
	callInfo := struct {
		ParsedID uuid.UUID
		Text     string
	}{ParsedID: parsedID, Text: text}
	mock.lockWriteExample.Lock()
	mock.calls.WriteExample = append(mock.calls.WriteExample, callInfo)
	mock.lockWriteExample.Unlock()
	return mock.WriteExampleFunc(ctx, parsedID, text)
}

func (mock *SinkMock) WriteExampleCalls() []struct {
	ParsedID uuid.UUID
	Text     string
} {
	mock.lockWriteExample.RLock()
	calls := mock.calls.WriteExample
	mock.lockWriteExample.RUnlock()
	return calls
}

func (mock *SinkMock) WriteSynonyms(ctx context.Context, parsedID uuid.UUID, texts []string) error {
	if mock.WriteSynonymsFunc == nil {
		panic("SinkMock.WriteSynonymsFunc: method is nil but Sink.WriteSynonyms was just called")
	}
	callInfo := struct {
		ParsedID uuid.UUID
		Texts    []string
	}{ParsedID: parsedID, Texts: texts}
	mock.lockWriteSynonyms.Lock()
	mock.calls.WriteSynonyms = append(mock.calls.WriteSynonyms, callInfo)
	mock.lockWriteSynonyms.Unlock()
	return mock.WriteSynonymsFunc(ctx, parsedID, texts)
}

func (mock *SinkMock) WriteSynonymsCalls() []struct {
	ParsedID uuid.UUID
	Texts    []string
} {
	mock.lockWriteSynonyms.RLock()
	calls := mock.calls.WriteSynonyms
	mock.lockWriteSynonyms.RUnlock()
	return calls
}

func (mock *SinkMock) WriteEtymology(ctx context.Context, entryID uuid.UUID, text string, languageCode string) error {
	if mock.WriteEtymologyFunc == nil {
		panic("SinkMock.WriteEtymologyFunc: method is nil but Sink.WriteEtymology was just called")
	}
	callInfo := struct {
		EntryID      uuid.UUID
		Text         string
		LanguageCode string
	}{EntryID: entryID, Text: text, LanguageCode: languageCode}
	mock.lockWriteEtymology.Lock()
	mock.calls.WriteEtymology = append(mock.calls.WriteEtymology, callInfo)
	mock.lockWriteEtymology.Unlock()
	return mock.WriteEtymologyFunc(ctx, entryID, text, languageCode)
}

func (mock *SinkMock) WriteEtymologyCalls() []struct {
	EntryID      uuid.UUID
	Text         string
	LanguageCode string
} {
	mock.lockWriteEtymology.RLock()
	calls := mock.calls.WriteEtymology
	mock.lockWriteEtymology.RUnlock()
	return calls
}

func (mock *SinkMock) WriteCrossReference(ctx context.Context, parsedID uuid.UUID, target string, refType domain.ReferenceType) error {
	if mock.WriteCrossReferenceFunc == nil {
		panic("SinkMock.WriteCrossReferenceFunc: method is nil but Sink.WriteCrossReference was just called")
	}
	callInfo := struct {
		ParsedID uuid.UUID
		Target   string
		RefType  domain.ReferenceType
	}{ParsedID: parsedID, Target: target, RefType: refType}
	mock.lockWriteCrossReference.Lock()
	mock.calls.WriteCrossReference = append(mock.calls.WriteCrossReference, callInfo)
	mock.lockWriteCrossReference.Unlock()
	return mock.WriteCrossReferenceFunc(ctx, parsedID, target, refType)
}

func (mock *SinkMock) WriteCrossReferenceCalls() []struct {
	ParsedID uuid.UUID
	Target   string
	RefType  domain.ReferenceType
} {
	mock.lockWriteCrossReference.RLock()
	calls := mock.calls.WriteCrossReference
	mock.lockWriteCrossReference.RUnlock()
	return calls
}

func (mock *SinkMock) WriteAlias(ctx context.Context, parsedID uuid.UUID, alias string) error {
	if mock.WriteAliasFunc == nil {
		panic("SinkMock.WriteAliasFunc: method is nil but Sink.WriteAlias was just called")
	}
	callInfo := struct {
		ParsedID uuid.UUID
		Alias    string
	}{ParsedID: parsedID, Alias: alias}
	mock.lockWriteAlias.Lock()
	mock.calls.WriteAlias = append(mock.calls.WriteAlias, callInfo)
	mock.lockWriteAlias.Unlock()
	return mock.WriteAliasFunc(ctx, parsedID, alias)
}

func (mock *SinkMock) WriteAliasCalls() []struct {
	ParsedID uuid.UUID
	Alias    string
} {
	mock.lockWriteAlias.RLock()
	calls := mock.calls.WriteAlias
	mock.lockWriteAlias.RUnlock()
	return calls
}
