package cache

import (
	"context"
	"fmt"
	"time"
)

// Key builders for the per-domain cached objects. The names follow the
// convention already present in cached data ({domain}_{id} or
// {domain}_{id1}_{id2}), so entries written by earlier deployments stay
// readable.

// UserProgressKey names a user's aggregated study progress.
func UserProgressKey(userID string) string {
	return fmt.Sprintf("progresso_usuario_%s", userID)
}

// ExamResultKey names the graded result of a mock exam.
func ExamResultKey(simuladoID string) string {
	return fmt.Sprintf("resultado_simulado_%s", simuladoID)
}

// WeeklyQuestionsKey names a user's question set for a given week.
func WeeklyQuestionsKey(userID string, week int) string {
	return fmt.Sprintf("questoes_semana_%s_%d", userID, week)
}

// FlashcardsKey names the flashcard deck of a subject.
func FlashcardsKey(subjectID string) string {
	return fmt.Sprintf("flashcards_materia_%s", subjectID)
}

// StudyPlanKey names a user's study plan.
func StudyPlanKey(userID string) string {
	return fmt.Sprintf("plano_estudo_%s", userID)
}

// SubjectMapKey names the subject map of an exam category.
func SubjectMapKey(categoryID string) string {
	return fmt.Sprintf("mapa_materias_%s", categoryID)
}

// Convenience accessors. Thin wrappers over Get/Set with the key
// builders above; they add no behavior of their own.

// GetUserProgress loads cached progress for a user.
func (s *Service) GetUserProgress(ctx context.Context, userID string, dest any) error {
	return s.Get(ctx, UserProgressKey(userID), dest)
}

// SetUserProgress caches progress for a user with the default TTL.
func (s *Service) SetUserProgress(ctx context.Context, userID string, progress any) error {
	return s.Set(ctx, UserProgressKey(userID), progress)
}

// InvalidateUserProgress drops every cached progress entry for a user.
func (s *Service) InvalidateUserProgress(ctx context.Context, userID string) error {
	return s.Clear(ctx, UserProgressKey(userID))
}

// GetExamResult loads a cached mock exam result.
func (s *Service) GetExamResult(ctx context.Context, simuladoID string, dest any) error {
	return s.Get(ctx, ExamResultKey(simuladoID), dest)
}

// SetExamResult caches a mock exam result with the default TTL.
func (s *Service) SetExamResult(ctx context.Context, simuladoID string, result any) error {
	return s.Set(ctx, ExamResultKey(simuladoID), result)
}

// GetWeeklyQuestions loads a user's cached weekly question set.
func (s *Service) GetWeeklyQuestions(ctx context.Context, userID string, week int, dest any) error {
	return s.Get(ctx, WeeklyQuestionsKey(userID, week), dest)
}

// SetWeeklyQuestions caches a weekly question set. Weekly sets rotate,
// so they keep a shorter TTL than the default.
func (s *Service) SetWeeklyQuestions(ctx context.Context, userID string, week int, questions any) error {
	return s.SetWithTTL(ctx, WeeklyQuestionsKey(userID, week), questions, 30*time.Minute)
}
