package util

import (
	"errors"
	"fmt"
)

var (
	ErrEleveNotFound       = errors.New("élève non trouvé")
	ErrEmailTaken          = errors.New("cet email est déjà utilisé")
	ErrInvalidCredentials  = errors.New("email ou mot de passe incorrect")
	ErrAdminNotFound       = errors.New("admin non trouvé")
	ErrBadPassword         = errors.New("mot de passe incorrect")
	ErrQuestionNotFound    = errors.New("question non trouvée")
	ErrNoQuestionsForLevel = errors.New("no questions found for this level")
)

// IncompleteSubmissionError rejects a level submission whose answer count does
// not match the question count. The counts are surfaced in the 400 body.
type IncompleteSubmissionError struct {
	Expected int
	Received int
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("expected %d answers, received %d", e.Expected, e.Received)
}
