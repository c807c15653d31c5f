package rest

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingTrackerAcquireRelease(t *testing.T) {
	t.Parallel()

	tracker := newPendingTracker()

	assert.True(t, tracker.acquire("POST:/enrollments:{\"courseId\":1}"))
	assert.False(t, tracker.acquire("POST:/enrollments:{\"courseId\":1}"))
	assert.True(t, tracker.acquire("POST:/enrollments:{\"courseId\":2}"))

	tracker.release("POST:/enrollments:{\"courseId\":1}")
	assert.True(t, tracker.acquire("POST:/enrollments:{\"courseId\":1}"))
}

func TestRequestKeyShapes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET:/courses", requestKey("/courses", Options{}))

	body := RawJSON([]byte(`{"id":1}`))
	assert.Equal(t, `POST:/courses:{"id":1}`,
		requestKey("/courses", Options{Method: http.MethodPost, Body: body}))

	form, err := Form(map[string]string{"answer": "42"})
	require.NoError(t, err)
	assert.Equal(t, "POST:/homework:form-data",
		requestKey("/homework", Options{Method: http.MethodPost, Body: form}))

	values := url.Values{}
	values.Set("email", "a@b.c")
	assert.Equal(t, "POST:/auth/reset:email=a%40b.c",
		requestKey("/auth/reset", Options{Method: http.MethodPost, Body: Params(values)}))

	assert.Equal(t, "DELETE:/courses/9",
		requestKey("/courses/9", Options{Method: http.MethodDelete}))
}
