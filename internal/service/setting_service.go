package service

import (
	"context"
	"fmt"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SettingService 分组键值设置。GET 读穿缓存，PUT 覆盖提交键后失效该组。
type SettingService struct {
	SettingRepo *repository.SettingRepository
	Cache       *cache.Store
}

func NewSettingService(settingRepo *repository.SettingRepository, store *cache.Store) *SettingService {
	return &SettingService{SettingRepo: settingRepo, Cache: store}
}

// GetGroup 返回分组下 key->value 映射
func (s *SettingService) GetGroup(ctx context.Context, group string) (map[string]string, error) {
	if !model.ValidSettingGroup(group) {
		return nil, util.ErrUnknownSettingGroup
	}

	key := cache.SettingsGroup(group)
	var cached map[string]string
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	settings, err := s.SettingRepo.FindByGroup(group)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	s.Cache.SetJSON(ctx, key, out)
	return out, nil
}

// PutGroup 按组 upsert 提交的键并失效缓存
func (s *SettingService) PutGroup(ctx context.Context, group string, values map[string]string) (map[string]string, error) {
	if !model.ValidSettingGroup(group) {
		return nil, util.ErrUnknownSettingGroup
	}

	if err := s.SettingRepo.UpsertGroup(group, values); err != nil {
		return nil, err
	}
	if err := s.Cache.Invalidate(ctx, cache.SettingsGroup(group)); err != nil {
		return nil, err
	}
	return s.GetGroup(ctx, group)
}

// SendTestEmail 用 email 组存储的配置发一封测试邮件
func (s *SettingService) SendTestEmail(ctx context.Context, recipient string) error {
	emailCfg, err := s.GetGroup(ctx, model.SettingGroupEmail)
	if err != nil {
		return err
	}

	apiKey := emailCfg["sendgrid_api_key"]
	fromAddr := emailCfg["from_address"]
	fromName := emailCfg["from_name"]
	if apiKey == "" || fromAddr == "" {
		return fmt.Errorf("email settings incomplete: sendgrid_api_key and from_address are required")
	}

	from := mail.NewEmail(fromName, fromAddr)
	to := mail.NewEmail("", recipient)
	subject := "LMS Admin test email"
	body := "This is a test email confirming your email settings are working."
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected test email: status %d", resp.StatusCode)
	}
	return nil
}
