package domain

import (
	"errors"
	"strings"
	"sync"
)

// UploadStep is the progress of the upload flow
type UploadStep int

const (
	StepIdle       UploadStep = 0
	StepUploading  UploadStep = 1
	StepProcessing UploadStep = 2
	StepDone       UploadStep = 3
)

func (s UploadStep) String() string {
	switch s {
	case StepUploading:
		return "uploading"
	case StepProcessing:
		return "processing"
	case StepDone:
		return "done"
	default:
		return "idle"
	}
}

// TranslationPhase is the stage of the translation entry flow
type TranslationPhase string

const (
	PhaseIdle       TranslationPhase = "idle"
	PhaseSuggesting TranslationPhase = "suggesting"
	PhaseEditing    TranslationPhase = "editing"
	PhaseSaving     TranslationPhase = "saving"
	PhaseClosed     TranslationPhase = "closed"
)

var (
	ErrEmptyTranslation = errors.New("translation is empty")
	ErrSaveInFlight     = errors.New("translation is already being saved")
	ErrFlowClosed       = errors.New("translation flow is closed")
)

// TranslationFlow tracks adding a translation for one word
type TranslationFlow struct {
	mu sync.Mutex

	Word          string
	DocumentID    int64
	Phase         TranslationPhase
	Suggestions   []string
	SuggestionErr error
}

// NewTranslationFlow opens a flow in the suggesting phase
func NewTranslationFlow(word string, documentID int64) *TranslationFlow {
	return &TranslationFlow{
		Word:       word,
		DocumentID: documentID,
		Phase:      PhaseSuggesting,
	}
}

// Suggested records the suggestion fetch outcome and moves to editing
func (f *TranslationFlow) Suggested(suggestions []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Phase != PhaseSuggesting {
		return
	}
	f.Suggestions = suggestions
	f.SuggestionErr = err
	f.Phase = PhaseEditing
}

// BeginSave validates input and enters the saving phase.
// It returns the trimmed translation to send.
func (f *TranslationFlow) BeginSave(input string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.Phase {
	case PhaseSaving:
		return "", ErrSaveInFlight
	case PhaseClosed, PhaseIdle:
		return "", ErrFlowClosed
	}

	translation := strings.TrimSpace(input)
	if translation == "" {
		return "", ErrEmptyTranslation
	}

	f.Phase = PhaseSaving
	return translation, nil
}

// FinishSave closes the flow on success or returns to editing on failure
func (f *TranslationFlow) FinishSave(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Phase != PhaseSaving {
		return
	}
	if err != nil {
		f.Phase = PhaseEditing
		return
	}
	f.Phase = PhaseClosed
}

// Close abandons the flow
func (f *TranslationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Phase = PhaseClosed
}

// CurrentPhase returns the phase under lock
func (f *TranslationFlow) CurrentPhase() TranslationPhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Phase
}
