package cache

import (
	"context"
	"fmt"
	"time"

	"cohort/internal/observability"
)

const (
	UserKeyPrefix       = "user:%d"
	SurveyKeyPrefix     = "survey:%d"
	SurveyListFirstPage = "surveys:page:1"
)

const (
	UserTTL   = 5 * time.Minute
	SurveyTTL = 30 * time.Minute
	ListTTL   = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SurveyKey(surveyID uint) string {
	return fmt.Sprintf(SurveyKeyPrefix, surveyID)
}

func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		observability.CacheErrorRate.WithLabelValues("del").Inc()
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSurvey(ctx context.Context, surveyID uint) {
	Invalidate(ctx, SurveyKey(surveyID))
}

func InvalidateSurveyList(ctx context.Context) {
	Invalidate(ctx, SurveyListFirstPage)
}
