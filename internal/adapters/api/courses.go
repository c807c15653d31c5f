package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
)

// Course is the catalog record of one course.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	TeacherID   int64  `json:"teacherId"`
	TeacherName string `json:"teacherName,omitempty"`
	Status      int    `json:"status"`
	Cover       string `json:"cover,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type CoursePage struct {
	List       []Course   `json:"list"`
	Pagination Pagination `json:"pagination"`
}

// CourseAPI covers the course service endpoints. Catalog reads go through
// the response cache; every mutation invalidates it via the engine.
type CourseAPI struct {
	client *rest.Client
}

func NewCourseAPI(client *rest.Client) *CourseAPI {
	return &CourseAPI{client: client}
}

func (a *CourseAPI) List(ctx context.Context, page Page) (CoursePage, error) {
	result, err := a.client.CachedGet(ctx, withQuery("/courses", page.values()))
	if err != nil {
		return CoursePage{}, err
	}

	var payload CoursePage
	if err := result.DecodeData(&payload); err != nil {
		return CoursePage{}, fmt.Errorf("decode course list: %w", err)
	}
	return payload, nil
}

func (a *CourseAPI) Published(ctx context.Context, subject string) ([]Course, error) {
	path := "/courses/published"
	if subject != "" {
		path = withQuery(path, url.Values{"subject": []string{subject}})
	}

	result, err := a.client.CachedGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var courses []Course
	if err := result.DecodeData(&courses); err != nil {
		return nil, fmt.Errorf("decode published courses: %w", err)
	}
	return courses, nil
}

func (a *CourseAPI) Get(ctx context.Context, id int64) (Course, error) {
	result, err := a.client.Do(ctx, fmt.Sprintf("/courses/%d", id), rest.Options{})
	if err != nil {
		return Course{}, err
	}

	var course Course
	if err := result.DecodeData(&course); err != nil {
		return Course{}, fmt.Errorf("decode course: %w", err)
	}
	return course, nil
}

func (a *CourseAPI) Create(ctx context.Context, course Course) (domain.Result, error) {
	body, err := rest.JSON(course)
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, "/courses", rest.Options{Method: http.MethodPost, Body: body})
}

func (a *CourseAPI) Update(ctx context.Context, id int64, course Course) (domain.Result, error) {
	body, err := rest.JSON(course)
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, fmt.Sprintf("/courses/%d", id), rest.Options{Method: http.MethodPut, Body: body})
}

func (a *CourseAPI) UpdateStatus(ctx context.Context, id int64, status int) (domain.Result, error) {
	body, err := rest.JSON(map[string]int{"status": status})
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, fmt.Sprintf("/courses/%d/status", id), rest.Options{Method: http.MethodPut, Body: body})
}

func (a *CourseAPI) Delete(ctx context.Context, id int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/courses/%d", id), rest.Options{Method: http.MethodDelete})
}

// ExportCSV downloads the catalog as CSV, returning the server-suggested
// filename alongside the bytes.
func (a *CourseAPI) ExportCSV(ctx context.Context) (rest.Blob, error) {
	return a.client.DoBlob(ctx, "/courses/export?format=csv", rest.Options{})
}
