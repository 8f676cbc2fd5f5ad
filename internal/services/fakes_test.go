package services

import (
	"context"
	"fmt"
	"time"

	"chorequest/internal/engine"
	"chorequest/internal/models"
)

// In-memory repository fakes. They copy on read and write so state only
// changes through the repository calls, like a real database.

type fakeInstanceRepo struct {
	seq         int64
	byID        map[int64]models.TaskInstance
	assignments *fakeAssignmentRepo
}

func newFakeInstanceRepo(assignments *fakeAssignmentRepo) *fakeInstanceRepo {
	return &fakeInstanceRepo{byID: map[int64]models.TaskInstance{}, assignments: assignments}
}

func (f *fakeInstanceRepo) findByPair(assignmentID int64, due time.Time) *models.TaskInstance {
	for _, inst := range f.byID {
		if inst.AssignmentID == assignmentID && inst.DueDate.Equal(due) {
			out := inst
			return &out
		}
	}
	return nil
}

func (f *fakeInstanceRepo) Store(ctx context.Context, inst *models.TaskInstance) error {
	f.seq++
	inst.ID = f.seq
	inst.CreatedAt = time.Now()
	f.byID[inst.ID] = *inst
	return nil
}

func (f *fakeInstanceRepo) StoreIfAbsent(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, bool, error) {
	if existing := f.findByPair(assignmentID, dueDate); existing != nil {
		return existing, false, nil
	}
	inst := &models.TaskInstance{
		AssignmentID: assignmentID,
		DueDate:      dueDate,
		UsedTools:    []string{},
	}
	if err := f.Store(ctx, inst); err != nil {
		return nil, false, err
	}
	out := *inst
	return &out, true, nil
}

func (f *fakeInstanceRepo) FindByID(ctx context.Context, id int64) (*models.TaskInstance, error) {
	inst, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := inst
	return &out, nil
}

func (f *fakeInstanceRepo) FindByAssignmentAndDate(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, error) {
	return f.findByPair(assignmentID, dueDate), nil
}

func (f *fakeInstanceRepo) LatestDueDate(ctx context.Context, assignmentID int64) (*time.Time, error) {
	var latest *time.Time
	for _, inst := range f.byID {
		if inst.AssignmentID != assignmentID {
			continue
		}
		d := inst.DueDate
		if latest == nil || d.After(*latest) {
			latest = &d
		}
	}
	return latest, nil
}

func (f *fakeInstanceRepo) ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.TaskInstance, error) {
	// user scoping goes through the assignment, like the SQL join
	var out []models.TaskInstance
	for _, inst := range f.byID {
		if !inst.DueDate.Equal(dueDate) {
			continue
		}
		a, ok := f.assignments.byID[inst.AssignmentID]
		if !ok || a.UserID != userID {
			continue
		}
		out = append(out, inst)
	}
	return out, nil
}

func (f *fakeInstanceRepo) ListCompletedSince(ctx context.Context, userID int64, since time.Time) ([]models.TaskInstance, error) {
	var out []models.TaskInstance
	for _, inst := range f.byID {
		if !inst.Completed || inst.CompletedAt == nil || inst.CompletedAt.Before(since) {
			continue
		}
		a, ok := f.assignments.byID[inst.AssignmentID]
		if !ok || a.UserID != userID {
			continue
		}
		out = append(out, inst)
	}
	return out, nil
}

func (f *fakeInstanceRepo) SetCompleted(ctx context.Context, id int64, completed bool, completedAt *time.Time) error {
	inst, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("instance %d not found", id)
	}
	inst.Completed = completed
	inst.CompletedAt = completedAt
	f.byID[id] = inst
	return nil
}

type fakeAssignmentRepo struct {
	seq  int64
	byID map[int64]models.UserTaskAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{byID: map[int64]models.UserTaskAssignment{}}
}

func (f *fakeAssignmentRepo) Store(ctx context.Context, a *models.UserTaskAssignment) error {
	f.seq++
	a.ID = f.seq
	a.Active = true
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssignmentRepo) FindByID(ctx context.Context, id int64) (*models.UserTaskAssignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (f *fakeAssignmentRepo) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]models.UserTaskAssignment, error) {
	var out []models.UserTaskAssignment
	for id := int64(1); id <= f.seq; id++ {
		a, ok := f.byID[id]
		if !ok || a.UserID != userID {
			continue
		}
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a *models.UserTaskAssignment) error {
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssignmentRepo) SetActive(ctx context.Context, id int64, active bool) error {
	a, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("assignment %d not found", id)
	}
	a.Active = active
	f.byID[id] = a
	return nil
}

type fakeTemplateRepo struct {
	seq  int64
	byID map[int64]models.TaskTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byID: map[int64]models.TaskTemplate{}}
}

func (f *fakeTemplateRepo) Store(ctx context.Context, tpl *models.TaskTemplate) error {
	f.seq++
	tpl.ID = f.seq
	f.byID[tpl.ID] = *tpl
	return nil
}

func (f *fakeTemplateRepo) FindByID(ctx context.Context, id int64) (*models.TaskTemplate, error) {
	tpl, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := tpl
	return &out, nil
}

func (f *fakeTemplateRepo) FindAll(ctx context.Context, filter models.TemplateFilter) ([]models.TaskTemplate, error) {
	var out []models.TaskTemplate
	for _, tpl := range f.byID {
		out = append(out, tpl)
	}
	return out, nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, tpl *models.TaskTemplate) error {
	f.byID[tpl.ID] = *tpl
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTemplateRepo) CountActiveAssignments(ctx context.Context, templateID int64) (int, error) {
	return 0, nil
}

type fakeProfileRepo struct {
	byUser map[int64]models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[int64]models.UserProfile{}}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *models.UserProfile) error {
	p.ID = int64(len(f.byUser) + 1)
	f.byUser[p.UserID] = *p
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *models.UserProfile) error {
	f.byUser[p.UserID] = *p
	return nil
}

type fakeAreaRepo struct {
	seq      int64
	byID     map[int64]models.HomeArea
	failSave bool
}

func newFakeAreaRepo() *fakeAreaRepo {
	return &fakeAreaRepo{byID: map[int64]models.HomeArea{}}
}

func (f *fakeAreaRepo) Store(ctx context.Context, area *models.HomeArea) error {
	f.seq++
	area.ID = f.seq
	f.byID[area.ID] = *area
	return nil
}

func (f *fakeAreaRepo) FindByID(ctx context.Context, id int64) (*models.HomeArea, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (f *fakeAreaRepo) FindByUserAndType(ctx context.Context, userID int64, areaType models.Category) (*models.HomeArea, error) {
	for _, a := range f.byID {
		if a.UserID == userID && a.AreaType == areaType {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAreaRepo) ListByUser(ctx context.Context, userID int64) ([]models.HomeArea, error) {
	var out []models.HomeArea
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAreaRepo) Update(ctx context.Context, area *models.HomeArea) error {
	if f.failSave {
		return fmt.Errorf("area save failed")
	}
	f.byID[area.ID] = *area
	return nil
}

type fakeToolRepo struct {
	seq  int64
	byID map[int64]models.UserTool
}

func newFakeToolRepo() *fakeToolRepo {
	return &fakeToolRepo{byID: map[int64]models.UserTool{}}
}

func (f *fakeToolRepo) Store(ctx context.Context, tool *models.UserTool) error {
	f.seq++
	tool.ID = f.seq
	tool.Active = true
	f.byID[tool.ID] = *tool
	return nil
}

func (f *fakeToolRepo) FindByID(ctx context.Context, id int64) (*models.UserTool, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := t
	return &out, nil
}

func (f *fakeToolRepo) FindActiveByUserAndTool(ctx context.Context, userID int64, toolID string) (*models.UserTool, error) {
	for _, t := range f.byID {
		if t.UserID == userID && t.ToolID == toolID && t.Active {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeToolRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserTool, error) {
	var out []models.UserTool
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeToolRepo) Update(ctx context.Context, tool *models.UserTool) error {
	f.byID[tool.ID] = *tool
	return nil
}

// fakeCompletionRepo mirrors the transactional semantics of the SQL
// implementation: the CAS on the completed flag and the all-or-nothing
// pairing with the profile save.
type fakeCompletionRepo struct {
	instances   *fakeInstanceRepo
	profiles    *fakeProfileRepo
	failProfile bool
}

func (f *fakeCompletionRepo) Complete(ctx context.Context, inst *models.TaskInstance, profile *models.UserProfile) error {
	stored, ok := f.instances.byID[inst.ID]
	if !ok {
		return fmt.Errorf("instance %d not found", inst.ID)
	}
	if stored.Completed {
		return engine.ErrAlreadyCompleted
	}
	if f.failProfile {
		// profile write failed: nothing is persisted
		return fmt.Errorf("save profile: boom")
	}
	f.instances.byID[inst.ID] = *inst
	f.profiles.byUser[profile.UserID] = *profile
	return nil
}

type fakeUserRepo struct {
	seq  int64
	byID map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.DisplayName = displayName
	f.byID[id] = u
	return nil
}

func (f *fakeUserRepo) UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.RefreshToken = &token
	u.RefreshExpiresAt = &expiresAt
	u.RefreshRevoked = false
	f.byID[id] = u
	return nil
}

func (f *fakeUserRepo) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range f.byID {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) RotateRefresh(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.User, error) {
	for id, u := range f.byID {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken && !u.RefreshRevoked {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &expiresAt
			f.byID[id] = u
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SetTelegramChat(ctx context.Context, id int64, chatID int64) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.TelegramChatID = chatID
	f.byID[id] = u
	return nil
}

func (f *fakeUserRepo) ListWithTelegram(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		if u.TelegramChatID != 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeEmailService records sends instead of dialing SMTP.
type fakeEmailService struct {
	welcomes  []string
	summaries []string
	completed int
	expEarned int
}

func (f *fakeEmailService) SendWelcomeEmail(email, displayName string) error {
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeEmailService) SendWeeklySummary(email, displayName string, completed, expEarned int) error {
	f.summaries = append(f.summaries, email)
	f.completed = completed
	f.expEarned = expEarned
	return nil
}

type fakeLegacyRepo struct {
	tasks []models.LegacyTask
}

func (f *fakeLegacyRepo) ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.LegacyTask, error) {
	var out []models.LegacyTask
	for _, t := range f.tasks {
		if t.UserID == userID && t.DueDate != nil && t.DueDate.Equal(dueDate) {
			out = append(out, t)
		}
	}
	return out, nil
}
