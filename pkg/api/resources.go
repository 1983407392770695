package api

import (
	"context"
	"net/http"

	"github.com/vuet/vuet-client/pkg/models"
)

// ListTasks returns every task visible to the user.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	return list[models.Task](ctx, c, Endpoints[models.KindTask])
}

// ListEntities returns every entity, of all entity kinds.
func (c *Client) ListEntities(ctx context.Context) ([]models.Entity, error) {
	return list[models.Entity](ctx, c, Endpoints[models.KindEntity])
}

// ListCategories returns the life-area categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, c, Endpoints[models.KindCategory])
}

// ListAlerts returns the task alerts addressed to the user.
func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	return list[models.Alert](ctx, c, Endpoints[models.KindAlert])
}

// ListActionAlerts returns the task action alerts addressed to the user.
func (c *Client) ListActionAlerts(ctx context.Context) ([]models.ActionAlert, error) {
	return list[models.ActionAlert](ctx, c, Endpoints[models.KindActionAlert])
}

// ListTaskActions returns the actions attached to tasks.
func (c *Client) ListTaskActions(ctx context.Context) ([]models.TaskAction, error) {
	return list[models.TaskAction](ctx, c, Endpoints[models.KindTaskAction])
}

// ListReferences returns every reference.
func (c *Client) ListReferences(ctx context.Context) ([]models.Reference, error) {
	return list[models.Reference](ctx, c, Endpoints[models.KindReference])
}

// ListReferenceGroups returns the groups references are filed under.
func (c *Client) ListReferenceGroups(ctx context.Context) ([]models.ReferenceGroup, error) {
	return list[models.ReferenceGroup](ctx, c, Endpoints[models.KindReferenceGroup])
}

// ListSchoolYears returns the school years of every school.
func (c *Client) ListSchoolYears(ctx context.Context) ([]models.SchoolYear, error) {
	return list[models.SchoolYear](ctx, c, Endpoints[models.KindSchoolYear])
}

// ListSchoolTerms returns the terms of every school year.
func (c *Client) ListSchoolTerms(ctx context.Context) ([]models.SchoolTerm, error) {
	return list[models.SchoolTerm](ctx, c, Endpoints[models.KindSchoolTerm])
}

// ListSchoolBreaks returns the breaks of every school year.
func (c *Client) ListSchoolBreaks(ctx context.Context) ([]models.SchoolBreak, error) {
	return list[models.SchoolBreak](ctx, c, Endpoints[models.KindSchoolBreak])
}

// ListRoutines returns the user's routines.
func (c *Client) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	return list[models.Routine](ctx, c, Endpoints[models.KindRoutine])
}

// ListMembers returns the family members.
func (c *Client) ListMembers(ctx context.Context) ([]models.Member, error) {
	return list[models.Member](ctx, c, Endpoints[models.KindMember])
}

// TaskInput is the writable subset of a task.
type TaskInput struct {
	Title         string          `json:"title"`
	Type          models.TaskType `json:"type"`
	Members       []int           `json:"members"`
	Entities      []int           `json:"entities,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Location      string          `json:"location,omitempty"`
	StartDatetime string          `json:"start_datetime,omitempty"`
	EndDatetime   string          `json:"end_datetime,omitempty"`
	Date          string          `json:"date,omitempty"`
	DueDate       string          `json:"due_date,omitempty"`
	Duration      *int            `json:"duration,omitempty"`
}

// CreateTask creates a task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, in TaskInput) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPost, Endpoints[models.KindTask], in, &out)
	return out, err
}

// UpdateTask applies a partial update to a task. Only the keys present in
// patch are changed.
func (c *Client) UpdateTask(ctx context.Context, id int, patch map[string]any) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPatch, detail(Endpoints[models.KindTask], id), patch, &out)
	return out, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, detail(Endpoints[models.KindTask], id), nil, nil)
}

// MarkAlertsRead marks the given alerts as read, stopping at the first failure.
func (c *Client) MarkAlertsRead(ctx context.Context, ids []int) error {
	for _, id := range ids {
		if err := c.do(ctx, http.MethodPatch, detail(Endpoints[models.KindAlert], id), map[string]bool{"read": true}, nil); err != nil {
			return err
		}
	}
	return nil
}
