// Package metrics defines the custom Prometheus metrics for the task list
// application. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhive"

// TasksCreatedTotal counts tasks created through the add form.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TasksToggledTotal counts completion toggles.
// Label:
//   - completed: "true" when the toggle marked the task done, "false" when it
//     reopened it
var TasksToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_toggled_total",
		Help:      "Total number of task completion toggles, by resulting state.",
	},
	[]string{"completed"},
)

// TasksDeletedTotal counts single-task deletions.
var TasksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted individually.",
	},
)

// TasksClearedTotal counts tasks removed by the bulk clear-completed action.
var TasksClearedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_cleared_total",
		Help:      "Total number of tasks removed by clear-completed.",
	},
)

// SignupsTotal counts successful account creations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
