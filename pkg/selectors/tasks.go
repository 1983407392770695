package selectors

import (
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/store"
)

// AlertsForTask returns the alerts raised against a task.
func AlertsForTask(snap *store.Snapshot, taskID int) []models.Alert {
	return snap.Alerts.Lookup(snap.AlertsByTask.Get(taskID))
}

// UnreadAlertsForTask returns the task's alerts addressed to userID and not
// yet read.
func UnreadAlertsForTask(snap *store.Snapshot, taskID, userID int) []models.Alert {
	out := []models.Alert{}
	for _, a := range AlertsForTask(snap, taskID) {
		if a.User == userID && !a.Read {
			out = append(out, a)
		}
	}
	return out
}

// ActionAlertsForAction returns the alerts raised against a task action.
func ActionAlertsForAction(snap *store.Snapshot, actionID int) []models.ActionAlert {
	return snap.ActionAlerts.Lookup(snap.ActionAlertsByAction.Get(actionID))
}

// ActionsForTask returns the task's actions.
func ActionsForTask(snap *store.Snapshot, taskID int) []models.TaskAction {
	return snap.TaskActions.Lookup(snap.ActionsByTask.Get(taskID))
}

// TasksForAction returns the tasks generated from a task action.
func TasksForAction(snap *store.Snapshot, actionID int) []models.Task {
	return snap.Tasks.Lookup(snap.TasksByAction.Get(actionID))
}

// TasksForMember returns the tasks a member is assigned to.
func TasksForMember(snap *store.Snapshot, memberID int) []models.Task {
	return snap.Tasks.Lookup(snap.TasksByMember.Get(memberID))
}

// TasksForEntity returns the tasks linked to an entity or to any of its
// descendants, in task collection order.
func TasksForEntity(snap *store.Snapshot, entityID int) []models.Task {
	wanted := map[int]struct{}{}
	for _, id := range append([]int{entityID}, EntityDescendants(snap, entityID)...) {
		for _, taskID := range snap.TasksByEntity.Get(id) {
			wanted[taskID] = struct{}{}
		}
	}
	return ValuesWhere(snap.Tasks, func(t models.Task) bool {
		_, ok := wanted[t.ID]
		return ok
	})
}
