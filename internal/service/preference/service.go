package preference

import (
	"context"
	"errors"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

type PreferenceServiceImpl struct {
	preference.PreferenceRepository
	now func() time.Time
}

func NewPreferenceService(repo preference.PreferenceRepository) *PreferenceServiceImpl {
	return &PreferenceServiceImpl{PreferenceRepository: repo, now: time.Now}
}

var _ preference.PreferenceService = (*PreferenceServiceImpl)(nil)

// Get implements preference.PreferenceService. An unset theme reads as light.
func (p *PreferenceServiceImpl) Get(ctx context.Context, key string) (preference.PreferenceResponse, error) {
	if !validator.IsValidPreferenceKey(key) {
		return preference.PreferenceResponse{}, validator.Single("key", "key must be lowercase letters, digits, dots or underscores")
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return preference.PreferenceResponse{}, err
	}

	pref, err := p.PreferenceRepository.Get(ctx, sess.Username, key)
	if errors.Is(err, preference.ErrPreferenceNotFound) && key == preference.ThemeKey {
		return preference.PreferenceResponse{Key: key, Value: preference.ThemeLight}, nil
	}
	if err != nil {
		return preference.PreferenceResponse{}, err
	}
	return preference.ToPreferenceResponse(pref), nil
}

// List implements preference.PreferenceService.
func (p *PreferenceServiceImpl) List(ctx context.Context) ([]preference.PreferenceResponse, error) {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := p.PreferenceRepository.List(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	out := make([]preference.PreferenceResponse, 0, len(prefs))
	for _, pref := range prefs {
		out = append(out, preference.ToPreferenceResponse(pref))
	}
	return out, nil
}

// Set implements preference.PreferenceService.
func (p *PreferenceServiceImpl) Set(ctx context.Context, req preference.SetPreferenceRequest) (preference.PreferenceResponse, error) {
	if err := req.Validate(); err != nil {
		return preference.PreferenceResponse{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return preference.PreferenceResponse{}, err
	}

	saved, err := p.Upsert(ctx, preference.Preference{
		Username:  sess.Username,
		Key:       req.Key,
		Value:     req.Value,
		UpdatedAt: p.now().UTC(),
	})
	if err != nil {
		return preference.PreferenceResponse{}, err
	}
	return preference.ToPreferenceResponse(saved), nil
}
