package service

import (
	"context"
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingGroupRoundTrip(t *testing.T) {
	svc, _ := newSettingService(t)
	ctx := context.Background()

	saved, err := svc.PutGroup(ctx, model.SettingGroupGeneral, map[string]string{
		"site_name":        "LMS Admin",
		"site_description": "后台",
	})
	require.NoError(t, err)
	assert.Equal(t, "LMS Admin", saved["site_name"])

	got, err := svc.GetGroup(ctx, model.SettingGroupGeneral)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSettingPutGroupUpserts(t *testing.T) {
	svc, _ := newSettingService(t)
	ctx := context.Background()

	_, err := svc.PutGroup(ctx, model.SettingGroupGeneral, map[string]string{
		"site_name": "Old",
		"keep_me":   "v1",
	})
	require.NoError(t, err)

	// 覆盖已有键，未提交的键保持不变
	got, err := svc.PutGroup(ctx, model.SettingGroupGeneral, map[string]string{
		"site_name": "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got["site_name"])
	assert.Equal(t, "v1", got["keep_me"])
}

func TestSettingGroupsAreIsolated(t *testing.T) {
	svc, _ := newSettingService(t)
	ctx := context.Background()

	_, err := svc.PutGroup(ctx, model.SettingGroupGeneral, map[string]string{"k": "general"})
	require.NoError(t, err)
	_, err = svc.PutGroup(ctx, model.SettingGroupEmail, map[string]string{"k": "email"})
	require.NoError(t, err)

	general, err := svc.GetGroup(ctx, model.SettingGroupGeneral)
	require.NoError(t, err)
	email, err := svc.GetGroup(ctx, model.SettingGroupEmail)
	require.NoError(t, err)
	assert.Equal(t, "general", general["k"])
	assert.Equal(t, "email", email["k"])
}

func TestSettingUnknownGroup(t *testing.T) {
	svc, _ := newSettingService(t)
	ctx := context.Background()

	_, err := svc.GetGroup(ctx, "nope")
	assert.ErrorIs(t, err, util.ErrUnknownSettingGroup)

	_, err = svc.PutGroup(ctx, "nope", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, util.ErrUnknownSettingGroup)
}

func TestSendTestEmailRequiresConfig(t *testing.T) {
	svc, _ := newSettingService(t)

	// 未配置 sendgrid 时直接报错，不发起外部调用
	err := svc.SendTestEmail(context.Background(), "to@example.com")
	assert.Error(t, err)
}
