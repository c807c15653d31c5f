package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
)

type Enrollment struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"courseId"`
	StudentID  int64  `json:"studentId"`
	Course     string `json:"courseTitle,omitempty"`
	Progress   int    `json:"progress"`
	EnrolledAt string `json:"enrolledAt,omitempty"`
}

// EnrollmentAPI covers enrollment and progress endpoints.
type EnrollmentAPI struct {
	client *rest.Client
}

func NewEnrollmentAPI(client *rest.Client) *EnrollmentAPI {
	return &EnrollmentAPI{client: client}
}

func (a *EnrollmentAPI) Enroll(ctx context.Context, courseID, studentID int64) (domain.Result, error) {
	body, err := rest.JSON(map[string]int64{"courseId": courseID, "studentId": studentID})
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, "/enrollments", rest.Options{Method: http.MethodPost, Body: body})
}

func (a *EnrollmentAPI) Drop(ctx context.Context, enrollmentID int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/enrollments/%d", enrollmentID),
		rest.Options{Method: http.MethodDelete})
}

func (a *EnrollmentAPI) ForStudent(ctx context.Context, studentID int64) ([]Enrollment, error) {
	result, err := a.client.Do(ctx, fmt.Sprintf("/enrollments/student/%d", studentID), rest.Options{})
	if err != nil {
		return nil, err
	}

	var enrollments []Enrollment
	if err := result.DecodeData(&enrollments); err != nil {
		return nil, fmt.Errorf("decode enrollment list: %w", err)
	}
	return enrollments, nil
}

func (a *EnrollmentAPI) UpdateProgress(ctx context.Context, enrollmentID int64, progress int) (domain.Result, error) {
	body, err := rest.JSON(map[string]int{"progress": progress})
	if err != nil {
		return domain.Result{}, err
	}
	return a.client.Do(ctx, fmt.Sprintf("/enrollments/%d/progress", enrollmentID),
		rest.Options{Method: http.MethodPut, Body: body})
}
