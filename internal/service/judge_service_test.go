package service

import (
	"errors"
	"testing"

	"qa_judge_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJudgeStore struct {
	judges map[string]*model.Judge
}

func newFakeJudgeStore() *fakeJudgeStore {
	return &fakeJudgeStore{judges: map[string]*model.Judge{}}
}

func (f *fakeJudgeStore) Create(j *model.Judge) error {
	j.ID = model.GenerateUUID()
	f.judges[j.ID] = j
	return nil
}

func (f *fakeJudgeStore) FindByID(id string) (*model.Judge, error) {
	j, ok := f.judges[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return j, nil
}

func (f *fakeJudgeStore) List() ([]model.Judge, error) {
	out := make([]model.Judge, 0, len(f.judges))
	for _, j := range f.judges {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJudgeStore) Update(j *model.Judge) error {
	f.judges[j.ID] = j
	return nil
}

func (f *fakeJudgeStore) Deactivate(id string) error {
	j, ok := f.judges[id]
	if !ok {
		return errors.New("record not found")
	}
	j.Active = false
	return nil
}

type fakeAssignmentStore struct {
	rows      []model.JudgeAssignment
	deleteErr error
	createErr func(callIndex int) error
	calls     int
}

func (f *fakeAssignmentStore) Create(a *model.JudgeAssignment) error {
	f.calls++
	if f.createErr != nil {
		if err := f.createErr(f.calls); err != nil {
			return err
		}
	}
	a.ID = model.GenerateUUID()
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAssignmentStore) ListByTemplate(templateID string) ([]model.JudgeAssignment, error) {
	var out []model.JudgeAssignment
	for _, r := range f.rows {
		if r.QuestionTemplateID == templateID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) DeleteByTemplate(templateID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	var kept []model.JudgeAssignment
	for _, r := range f.rows {
		if r.QuestionTemplateID != templateID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func TestCreateJudge_DefaultsToActive(t *testing.T) {
	svc := NewJudgeService(newFakeJudgeStore(), &fakeAssignmentStore{})

	judge, err := svc.CreateJudge(JudgeRequest{Name: "Strict"})
	require.NoError(t, err)
	assert.True(t, judge.Active)
	assert.NotEmpty(t, judge.ID)
}

func TestCreateJudge_ExplicitInactive(t *testing.T) {
	svc := NewJudgeService(newFakeJudgeStore(), &fakeAssignmentStore{})

	inactive := false
	judge, err := svc.CreateJudge(JudgeRequest{Name: "Draft", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, judge.Active)
}

func TestUpdateJudge_OverwritesFields(t *testing.T) {
	store := newFakeJudgeStore()
	svc := NewJudgeService(store, &fakeAssignmentStore{})

	created, err := svc.CreateJudge(JudgeRequest{Name: "Old", Prompt: strPtr("old rubric")})
	require.NoError(t, err)

	// 未携带的字段被置空，不做合并
	updated, err := svc.UpdateJudge(created.ID, JudgeRequest{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Nil(t, updated.Prompt)
	assert.True(t, updated.Active)
}

func TestDeactivateJudge(t *testing.T) {
	store := newFakeJudgeStore()
	svc := NewJudgeService(store, &fakeAssignmentStore{})

	judge, err := svc.CreateJudge(JudgeRequest{Name: "Strict"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateJudge(judge.ID))
	got, err := svc.GetJudge(judge.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestSetAssignmentsForTemplate_ReplacesAll(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_1", "j_2"}))
	rows, err := svc.ListAssignments("t_1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 再次保存只留 j_3
	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_3"}))
	rows, err = svc.ListAssignments("t_1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "j_3", rows[0].JudgeID)
}

func TestSetAssignmentsForTemplate_EmptyClears(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_1"}))
	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", nil))

	rows, err := svc.ListAssignments("t_1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSetAssignmentsForTemplate_ScopedToTemplate(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_1"}))
	require.NoError(t, svc.SetAssignmentsForTemplate("t_2", []string{"j_2"}))
	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_9"}))

	rows, err := svc.ListAssignments("t_2")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "j_2", rows[0].JudgeID)
}

func TestSetAssignmentsForTemplate_DeleteErrorAborts(t *testing.T) {
	store := &fakeAssignmentStore{deleteErr: errors.New("delete failed")}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	err := svc.SetAssignmentsForTemplate("t_1", []string{"j_1"})
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSetAssignmentsForTemplate_InsertErrorShortCircuits(t *testing.T) {
	store := &fakeAssignmentStore{createErr: func(call int) error {
		if call == 2 {
			return errors.New("insert failed")
		}
		return nil
	}}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	err := svc.SetAssignmentsForTemplate("t_1", []string{"j_1", "j_2", "j_3"})
	require.Error(t, err)

	// 已知非原子：第一条已落库，后续不再尝试
	rows, listErr := svc.ListAssignments("t_1")
	require.NoError(t, listErr)
	require.Len(t, rows, 1)
	assert.Equal(t, "j_1", rows[0].JudgeID)
}

func TestSetAssignmentsForTemplate_DuplicatesKept(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewJudgeService(newFakeJudgeStore(), store)

	require.NoError(t, svc.SetAssignmentsForTemplate("t_1", []string{"j_1", "j_1"}))
	rows, err := svc.ListAssignments("t_1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
