package task

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docRequest = documenter.Request{
	ConnectionID:   "conn-7",
	ConnectionURI:  "postgresql://u:hunter2@db:5432/app",
	ConnectionName: "app",
}

func TestNewDocumentationTask_Validation(t *testing.T) {
	_, err := NewDocumentationTask(docRequest, nil, setupTestLogger())
	assert.ErrorIs(t, err, ErrNilDocumenter)

	_, err = NewDocumentationTask(docRequest, &mocks.MockDocumenter{}, nil)
	assert.ErrorIs(t, err, ErrNilLogger)
}

func TestDocumentationTask_Success(t *testing.T) {
	want := &documenter.Result{FriendlyName: "App", Documentation: "docs", SummaryID: "Sabc", TableCount: 3}
	doc := &mocks.MockDocumenter{Result: want}
	task, err := NewDocumentationTask(docRequest, doc, setupTestLogger())
	require.NoError(t, err)

	assert.Equal(t, TaskTypeDocumentation, task.Type())
	assert.Equal(t, TaskStatusPending, task.Status())
	assert.Nil(t, task.Result())

	require.NoError(t, task.Execute(context.Background()))

	assert.Equal(t, TaskStatusCompleted, task.Status())
	assert.Same(t, want, task.Result())
	require.Equal(t, 1, doc.CallCount())
	assert.Equal(t, docRequest, doc.Calls.Requests[0])
}

func TestDocumentationTask_NilResult(t *testing.T) {
	doc := &mocks.MockDocumenter{}
	task, err := NewDocumentationTask(docRequest, doc, setupTestLogger())
	require.NoError(t, err)

	err = task.Execute(context.Background())

	assert.ErrorIs(t, err, ErrDocumentationFailed)
	assert.Equal(t, TaskStatusFailed, task.Status())
	assert.Nil(t, task.Result())
}

func TestDocumentationTask_CancelledContext(t *testing.T) {
	doc := &mocks.MockDocumenter{}
	task, err := NewDocumentationTask(docRequest, doc, setupTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = task.Execute(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, TaskStatusFailed, task.Status())
	assert.Zero(t, doc.CallCount())
}

func TestDocumentationTask_PayloadOmitsURI(t *testing.T) {
	task, err := NewDocumentationTask(docRequest, &mocks.MockDocumenter{}, setupTestLogger())
	require.NoError(t, err)

	payload := task.Payload()

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, map[string]string{"connection_id": "conn-7", "connection_name": "app"}, decoded)
	assert.NotContains(t, string(payload), "hunter2")
}

func TestDocumentationTaskFactory(t *testing.T) {
	_, err := NewDocumentationTaskFactory(nil, setupTestLogger())
	assert.ErrorIs(t, err, ErrNilDocumenter)

	factory, err := NewDocumentationTaskFactory(&mocks.MockDocumenter{}, setupTestLogger())
	require.NoError(t, err)

	a, err := factory.CreateTask(docRequest)
	require.NoError(t, err)
	b, err := factory.CreateTask(docRequest)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, TaskTypeDocumentation, a.Type())
}
