package models

import "time"

// TaskType is the discriminant of a task or calendar event.
type TaskType string

const (
	TaskTypeTask           TaskType = "TASK"
	TaskTypeAppointment    TaskType = "APPOINTMENT"
	TaskTypeDueDate        TaskType = "DUE_DATE"
	TaskTypeFlight         TaskType = "FLIGHT"
	TaskTypeTrain          TaskType = "TRAIN"
	TaskTypeRentalCar      TaskType = "RENTAL_CAR"
	TaskTypeTaxi           TaskType = "TAXI"
	TaskTypeTransfer       TaskType = "TRANSFER"
	TaskTypeHotel          TaskType = "HOTEL"
	TaskTypeStayWithFriend TaskType = "STAY_WITH_FRIEND"
	TaskTypeActivity       TaskType = "ACTIVITY"
	TaskTypeFoodActivity   TaskType = "FOOD_ACTIVITY"
	TaskTypeOtherActivity  TaskType = "OTHER_ACTIVITY"
	TaskTypeAnniversary    TaskType = "ANNIVERSARY"
	TaskTypeBirthday       TaskType = "BIRTHDAY"
	TaskTypeHoliday        TaskType = "HOLIDAY"
	TaskTypeUserBirthday   TaskType = "USER_BIRTHDAY"
	TaskTypeICalEvent      TaskType = "ICAL_EVENT"
)

// Task is a to-do item or calendar event.
type Task struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Type          TaskType   `json:"type"`
	Members       []int      `json:"members"`
	Entities      []int      `json:"entities"`
	Tags          []string   `json:"tags"`
	IsComplete    bool       `json:"is_complete"`
	ActionID      *int       `json:"action_id"`
	Notes         string     `json:"notes,omitempty"`
	Location      string     `json:"location,omitempty"`
	StartDatetime *time.Time `json:"start_datetime,omitempty"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Date          string     `json:"date,omitempty"`
	DueDate       string     `json:"due_date,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (t Task) RecordID() int      { return t.ID }
func (t Task) Created() time.Time { return t.CreatedAt }

// HasAction reports whether the task is an occurrence of a task action.
func (t Task) HasAction() bool { return t.ActionID != nil }

// TaskAction is a reminder/action attached to a task (e.g. "book MOT two
// weeks before").
type TaskAction struct {
	ID              int    `json:"id"`
	Task            int    `json:"task"`
	ActionTimedelta string `json:"action_timedelta"`
	IsComplete      bool   `json:"is_complete"`
}

func (a TaskAction) RecordID() int { return a.ID }
