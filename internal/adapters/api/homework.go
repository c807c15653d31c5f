package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
)

type Homework struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Deadline  string `json:"deadline,omitempty"`
	Status    int    `json:"status"`
	Score     *int   `json:"score,omitempty"`
	Feedback  string `json:"feedback,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// HomeworkAPI covers the homework endpoints of the interaction service.
type HomeworkAPI struct {
	client *rest.Client
}

func NewHomeworkAPI(client *rest.Client) *HomeworkAPI {
	return &HomeworkAPI{client: client}
}

func (a *HomeworkAPI) ForStudent(ctx context.Context, studentID int64) ([]Homework, error) {
	result, err := a.client.Do(ctx, fmt.Sprintf("/homeworks/student/%d", studentID), rest.Options{})
	if err != nil {
		return nil, err
	}

	var homeworks []Homework
	if err := result.DecodeData(&homeworks); err != nil {
		return nil, fmt.Errorf("decode homework list: %w", err)
	}
	return homeworks, nil
}

func (a *HomeworkAPI) ForCourse(ctx context.Context, courseID int64) ([]Homework, error) {
	result, err := a.client.Do(ctx, fmt.Sprintf("/homeworks/course/%d", courseID), rest.Options{})
	if err != nil {
		return nil, err
	}

	var homeworks []Homework
	if err := result.DecodeData(&homeworks); err != nil {
		return nil, fmt.Errorf("decode homework list: %w", err)
	}
	return homeworks, nil
}

// Submit sends the student's answer, optionally with attached files as
// multipart form data.
func (a *HomeworkAPI) Submit(ctx context.Context, homeworkID int64, answer string, attachments ...rest.FilePart) (domain.Result, error) {
	var body rest.Payload
	var err error
	if len(attachments) > 0 {
		body, err = rest.Form(map[string]string{"answer": answer}, attachments...)
	} else {
		body, err = rest.JSON(map[string]string{"answer": answer})
	}
	if err != nil {
		return domain.Result{}, err
	}

	return a.client.Do(ctx, fmt.Sprintf("/homeworks/%d/submit", homeworkID),
		rest.Options{Method: http.MethodPost, Body: body})
}

func (a *HomeworkAPI) Grade(ctx context.Context, homeworkID, studentID int64, score int, feedback string) (domain.Result, error) {
	body, err := rest.JSON(map[string]any{
		"studentId": studentID,
		"score":     score,
		"feedback":  feedback,
	})
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, fmt.Sprintf("/homeworks/%d/grade", homeworkID),
		rest.Options{Method: http.MethodPost, Body: body})
}
