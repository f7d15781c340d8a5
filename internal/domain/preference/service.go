package preference

import "context"

type PreferenceService interface {
	Get(ctx context.Context, key string) (PreferenceResponse, error)
	List(ctx context.Context) ([]PreferenceResponse, error)
	Set(ctx context.Context, req SetPreferenceRequest) (PreferenceResponse, error)
}
