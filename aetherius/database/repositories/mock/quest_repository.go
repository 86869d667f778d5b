package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	repositories "github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	bun "github.com/uptrace/bun"
	gomock "go.uber.org/mock/gomock"
)

// MockQuestRepository is a mock of QuestRepository interface.
type MockQuestRepository struct {
	ctrl     *gomock.Controller
	recorder *MockQuestRepositoryMockRecorder
	isgomock struct{}
}

// MockQuestRepositoryMockRecorder is the mock recorder for MockQuestRepository.
type MockQuestRepositoryMockRecorder struct {
	mock *MockQuestRepository
}

// NewMockQuestRepository creates a new mock instance.
func NewMockQuestRepository(ctrl *gomock.Controller) *MockQuestRepository {
	mock := &MockQuestRepository{ctrl: ctrl}
	mock.recorder = &MockQuestRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQuestRepository) EXPECT() *MockQuestRepositoryMockRecorder {
	return m.recorder
}

// DeleteDetailsBefore mocks base method.
func (m *MockQuestRepository) DeleteDetailsBefore(ctx context.Context, day string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteDetailsBefore", ctx, day)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteDetailsBefore indicates an expected call of DeleteDetailsBefore.
func (mr *MockQuestRepositoryMockRecorder) DeleteDetailsBefore(ctx, day any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteDetailsBefore", reflect.TypeOf((*MockQuestRepository)(nil).DeleteDetailsBefore), ctx, day)
}

// Get mocks base method.
func (m *MockQuestRepository) Get(ctx context.Context, userID string, day string) (*models.DailyQuest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, userID, day)
	ret0, _ := ret[0].(*models.DailyQuest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockQuestRepositoryMockRecorder) Get(ctx, userID, day any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockQuestRepository)(nil).Get), ctx, userID, day)
}

// GetDetailForUpdate mocks base method.
func (m *MockQuestRepository) GetDetailForUpdate(ctx context.Context, userID string, day string) (*models.QuestSignalDetail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDetailForUpdate", ctx, userID, day)
	ret0, _ := ret[0].(*models.QuestSignalDetail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDetailForUpdate indicates an expected call of GetDetailForUpdate.
func (mr *MockQuestRepositoryMockRecorder) GetDetailForUpdate(ctx, userID, day any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDetailForUpdate", reflect.TypeOf((*MockQuestRepository)(nil).GetDetailForUpdate), ctx, userID, day)
}

// GetForUpdate mocks base method.
func (m *MockQuestRepository) GetForUpdate(ctx context.Context, userID string, day string) (*models.DailyQuest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetForUpdate", ctx, userID, day)
	ret0, _ := ret[0].(*models.DailyQuest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetForUpdate indicates an expected call of GetForUpdate.
func (mr *MockQuestRepositoryMockRecorder) GetForUpdate(ctx, userID, day any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetForUpdate", reflect.TypeOf((*MockQuestRepository)(nil).GetForUpdate), ctx, userID, day)
}

// InsertDetailIfAbsent mocks base method.
func (m *MockQuestRepository) InsertDetailIfAbsent(ctx context.Context, detail *models.QuestSignalDetail) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertDetailIfAbsent", ctx, detail)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertDetailIfAbsent indicates an expected call of InsertDetailIfAbsent.
func (mr *MockQuestRepositoryMockRecorder) InsertDetailIfAbsent(ctx, detail any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertDetailIfAbsent", reflect.TypeOf((*MockQuestRepository)(nil).InsertDetailIfAbsent), ctx, detail)
}

// InsertIfAbsent mocks base method.
func (m *MockQuestRepository) InsertIfAbsent(ctx context.Context, quest *models.DailyQuest) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertIfAbsent", ctx, quest)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertIfAbsent indicates an expected call of InsertIfAbsent.
func (mr *MockQuestRepositoryMockRecorder) InsertIfAbsent(ctx, quest any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertIfAbsent", reflect.TypeOf((*MockQuestRepository)(nil).InsertIfAbsent), ctx, quest)
}

// Update mocks base method.
func (m *MockQuestRepository) Update(ctx context.Context, quest *models.DailyQuest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, quest)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockQuestRepositoryMockRecorder) Update(ctx, quest any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockQuestRepository)(nil).Update), ctx, quest)
}

// UpdateDetail mocks base method.
func (m *MockQuestRepository) UpdateDetail(ctx context.Context, detail *models.QuestSignalDetail) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateDetail", ctx, detail)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateDetail indicates an expected call of UpdateDetail.
func (mr *MockQuestRepositoryMockRecorder) UpdateDetail(ctx, detail any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateDetail", reflect.TypeOf((*MockQuestRepository)(nil).UpdateDetail), ctx, detail)
}

// WithTx mocks base method.
func (m *MockQuestRepository) WithTx(db bun.IDB) repositories.QuestRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTx", db)
	ret0, _ := ret[0].(repositories.QuestRepository)
	return ret0
}

// WithTx indicates an expected call of WithTx.
func (mr *MockQuestRepositoryMockRecorder) WithTx(db any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTx", reflect.TypeOf((*MockQuestRepository)(nil).WithTx), db)
}

