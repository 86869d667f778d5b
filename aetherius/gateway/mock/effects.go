package mock

import (
	context "context"
	reflect "reflect"

	discord "github.com/disgoorg/disgo/discord"
	snowflake "github.com/disgoorg/snowflake/v2"
	gomock "go.uber.org/mock/gomock"
)

// MockEffects is a mock of Effects interface.
type MockEffects struct {
	ctrl     *gomock.Controller
	recorder *MockEffectsMockRecorder
	isgomock struct{}
}

// MockEffectsMockRecorder is the mock recorder for MockEffects.
type MockEffectsMockRecorder struct {
	mock *MockEffects
}

// NewMockEffects creates a new mock instance.
func NewMockEffects(ctrl *gomock.Controller) *MockEffects {
	mock := &MockEffects{ctrl: ctrl}
	mock.recorder = &MockEffectsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEffects) EXPECT() *MockEffectsMockRecorder {
	return m.recorder
}

// EditMessage mocks base method.
func (m *MockEffects) EditMessage(ctx context.Context, channelID snowflake.ID, messageID snowflake.ID, msg discord.MessageUpdate) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EditMessage", ctx, channelID, messageID, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// EditMessage indicates an expected call of EditMessage.
func (mr *MockEffectsMockRecorder) EditMessage(ctx, channelID, messageID, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EditMessage", reflect.TypeOf((*MockEffects)(nil).EditMessage), ctx, channelID, messageID, msg)
}

// FindTextChannel mocks base method.
func (m *MockEffects) FindTextChannel(ctx context.Context, guildID snowflake.ID, names []string) (snowflake.ID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindTextChannel", ctx, guildID, names)
	ret0, _ := ret[0].(snowflake.ID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindTextChannel indicates an expected call of FindTextChannel.
func (mr *MockEffectsMockRecorder) FindTextChannel(ctx, guildID, names any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindTextChannel", reflect.TypeOf((*MockEffects)(nil).FindTextChannel), ctx, guildID, names)
}

// GrantRole mocks base method.
func (m *MockEffects) GrantRole(ctx context.Context, guildID snowflake.ID, userID snowflake.ID, roleName string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GrantRole", ctx, guildID, userID, roleName)
	ret0, _ := ret[0].(error)
	return ret0
}

// GrantRole indicates an expected call of GrantRole.
func (mr *MockEffectsMockRecorder) GrantRole(ctx, guildID, userID, roleName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GrantRole", reflect.TypeOf((*MockEffects)(nil).GrantRole), ctx, guildID, userID, roleName)
}

// MemberRoles mocks base method.
func (m *MockEffects) MemberRoles(ctx context.Context, guildID snowflake.ID, userID snowflake.ID) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MemberRoles", ctx, guildID, userID)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MemberRoles indicates an expected call of MemberRoles.
func (mr *MockEffectsMockRecorder) MemberRoles(ctx, guildID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MemberRoles", reflect.TypeOf((*MockEffects)(nil).MemberRoles), ctx, guildID, userID)
}

// SendMessage mocks base method.
func (m *MockEffects) SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendMessage", ctx, channelID, msg)
	ret0, _ := ret[0].(snowflake.ID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendMessage indicates an expected call of SendMessage.
func (mr *MockEffectsMockRecorder) SendMessage(ctx, channelID, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMessage", reflect.TypeOf((*MockEffects)(nil).SendMessage), ctx, channelID, msg)
}

