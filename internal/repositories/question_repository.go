package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
	"riderquiz/internal/models/quiz_models"
	"riderquiz/pkg/utils"
)

//go:embed data/questions/*.yaml data/rider_types.yaml
var bankFS embed.FS

type QuestionRepositoryInterface interface {
	ListQuestions(ctx context.Context) ([]quiz_models.Question, error)
	GetQuestion(ctx context.Context, id string) (quiz_models.Question, error)
	ListRiderProfiles(ctx context.Context) ([]quiz_models.RiderTypeProfile, error)
	GetRiderProfile(ctx context.Context, riderType quiz_models.RiderType) (quiz_models.RiderTypeProfile, error)
}

// QuestionRepository serves the static question bank. It is immutable after
// construction and safe for concurrent use.
type QuestionRepository struct {
	questions []quiz_models.Question
	byID      map[string]int
	profiles  map[quiz_models.RiderType]quiz_models.RiderTypeProfile
}

// NewQuestionRepository loads the embedded question bank.
func NewQuestionRepository() (*QuestionRepository, error) {
	return NewQuestionRepositoryFromFS(bankFS, "data")
}

// NewQuestionRepositoryFromFS loads <root>/questions/*.yaml and
// <root>/rider_types.yaml from fsys and validates them.
func NewQuestionRepositoryFromFS(fsys fs.FS, root string) (*QuestionRepository, error) {
	files, err := fs.Glob(fsys, path.Join(root, "questions", "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list question files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no question files under %s", root)
	}

	files = orderByCategory(files)

	var questions []quiz_models.Question
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var batch []quiz_models.Question
		if err := yaml.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("decode %s: %w", file, err)
		}
		questions = append(questions, batch...)
	}

	rawProfiles, err := fs.ReadFile(fsys, path.Join(root, "rider_types.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read rider types: %w", err)
	}
	var profiles []quiz_models.RiderTypeProfile
	if err := yaml.Unmarshal(rawProfiles, &profiles); err != nil {
		return nil, fmt.Errorf("decode rider types: %w", err)
	}

	return NewQuestionRepositoryFromData(questions, profiles)
}

// NewQuestionRepositoryFromData validates already decoded data. Malformed
// questions are programmer errors and fail construction.
func NewQuestionRepositoryFromData(questions []quiz_models.Question, profiles []quiz_models.RiderTypeProfile) (*QuestionRepository, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	repo := &QuestionRepository{
		questions: questions,
		byID:      make(map[string]int, len(questions)),
		profiles:  make(map[quiz_models.RiderType]quiz_models.RiderTypeProfile, len(profiles)),
	}

	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := repo.byID[q.ID]; dup {
			return nil, fmt.Errorf("question %q: duplicate id", q.ID)
		}
		repo.byID[q.ID] = i
	}

	for _, p := range profiles {
		if !p.Type.Valid() {
			return nil, fmt.Errorf("rider profile: unknown type %q", p.Type)
		}
		repo.profiles[p.Type] = p
	}
	for _, t := range quiz_models.RiderTypes {
		if _, ok := repo.profiles[t]; !ok {
			return nil, fmt.Errorf("rider profile for %q missing", t)
		}
	}

	return repo, nil
}

func validateQuestion(q quiz_models.Question) error {
	if q.ID == "" {
		return fmt.Errorf("question %q: empty id", q.Text)
	}
	if q.Text == "" {
		return fmt.Errorf("question %q: empty text", q.ID)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("question %q: unknown category %q", q.ID, q.Category)
	}
	if len(q.Answers) < 2 {
		return fmt.Errorf("question %q: needs at least two answers", q.ID)
	}
	for i, a := range q.Answers {
		if a.Text == "" {
			return fmt.Errorf("question %q answer %d: empty text", q.ID, i)
		}
		if len(a.Points) != len(quiz_models.RiderTypes) {
			return fmt.Errorf("question %q answer %d: points must cover all rider types", q.ID, i)
		}
		for _, t := range quiz_models.RiderTypes {
			points, ok := a.Points[t]
			if !ok {
				return fmt.Errorf("question %q answer %d: missing points for %q", q.ID, i, t)
			}
			if points < 0 {
				return fmt.Errorf("question %q answer %d: negative points for %q", q.ID, i, t)
			}
		}
		for trait := range a.SecondaryTraits {
			if !trait.Valid() {
				return fmt.Errorf("question %q answer %d: unknown trait %q", q.ID, i, trait)
			}
		}
	}
	return nil
}

// orderByCategory sorts bank files into category order; unknown names last.
func orderByCategory(files []string) []string {
	rank := func(file string) int {
		name := path.Base(file)
		name = name[:len(name)-len(path.Ext(name))]
		for i, c := range quiz_models.QuestionCategories {
			if string(c) == name {
				return i
			}
		}
		return len(quiz_models.QuestionCategories)
	}
	sorted := append([]string(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i]), rank(sorted[j])
		if ri != rj {
			return ri < rj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]quiz_models.Question, error) {
	out := make([]quiz_models.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

func (r *QuestionRepository) GetQuestion(ctx context.Context, id string) (quiz_models.Question, error) {
	i, ok := r.byID[id]
	if !ok {
		return quiz_models.Question{}, utils.ErrQuestionNotFound
	}
	return r.questions[i], nil
}

func (r *QuestionRepository) ListRiderProfiles(ctx context.Context) ([]quiz_models.RiderTypeProfile, error) {
	out := make([]quiz_models.RiderTypeProfile, 0, len(quiz_models.RiderTypes))
	for _, t := range quiz_models.RiderTypes {
		out = append(out, r.profiles[t])
	}
	return out, nil
}

func (r *QuestionRepository) GetRiderProfile(ctx context.Context, riderType quiz_models.RiderType) (quiz_models.RiderTypeProfile, error) {
	p, ok := r.profiles[riderType]
	if !ok {
		return quiz_models.RiderTypeProfile{}, fmt.Errorf("rider profile for %q not found", riderType)
	}
	return p, nil
}
