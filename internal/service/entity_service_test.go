package service

import (
	"context"
	"testing"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleService_UpdatePublishesOnlyWhenFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": [{"id": 1, "title": "Basics"}]}`, `{"lessons": []}`)
	svc := NewModuleService(f.modules, pubsub.NewNotifier(f.publisher, "events"), zerolog.Nop())

	title := "Advanced"
	m, err := svc.UpdateModule(ctx, 1, model.ModulePatch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Advanced", m.Title)

	m, err = svc.UpdateModule(ctx, 9, model.ModulePatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, []string{pubsub.ModuleUpdated}, f.publisher.types())
}

func TestLessonService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": []}`, `{"lessons": [{"id": 4, "title": "Intro", "description": "", "topics": [], "content": []}]}`)
	svc := NewLessonService(f.lessons, pubsub.NewNotifier(f.publisher, "events"), zerolog.Nop())

	l, err := svc.GetLessonByID(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Intro", l.Title)

	l, err = svc.UpdateLesson(ctx, 4, model.LessonPatch{Topics: []string{"go"}})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, []string{"go"}, l.Topics)
	assert.Equal(t, "Intro", l.Title)
	assert.Equal(t, []string{pubsub.LessonUpdated}, f.publisher.types())

	all, err := svc.ListLessons(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
