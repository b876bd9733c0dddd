package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive/internal/api/metrics"
	"github.com/taskhive/taskhive/internal/core/domain"
	"github.com/taskhive/taskhive/internal/core/ports"
)

// TaskHandler serves the HTML task views. NotFound and unexpected errors are
// returned to the central error handler; validation failures redisplay the
// submitted form.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Home handles GET /?filter={all|active|completed}. Anonymous callers get the
// page with empty lists rather than a redirect.
func (h *TaskHandler) Home(c echo.Context) error {
	filter := domain.ParseFilter(c.QueryParam("filter"))

	result, err := h.service.List(c.Request().Context(), accountID(c), filter)
	if err != nil {
		return err
	}

	data := viewData(c, "My tasks")
	data["Tasks"] = result.Tasks
	data["Active"] = result.Active
	data["Completed"] = result.Completed
	data["Filter"] = string(result.Filter)
	return c.Render(http.StatusOK, "home.html", data)
}

// AddForm handles GET /add/.
func (h *TaskHandler) AddForm(c echo.Context) error {
	data := viewData(c, "Add task")
	data["FormTitle"] = ""
	data["FormDescription"] = ""
	return c.Render(http.StatusOK, "add.html", data)
}

// Add handles POST /add/. Both fields must be non-empty; otherwise the form is
// redisplayed with an error and nothing is persisted.
func (h *TaskHandler) Add(c echo.Context) error {
	var form taskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	input := ports.TaskInput{Title: form.Title, Description: form.Description}
	if _, err := h.service.Add(c.Request().Context(), accountID(c), input); err != nil {
		if err == domain.ErrFieldsRequired {
			data := viewData(c, "Add task")
			data["Error"] = "Both fields are required."
			data["FormTitle"] = form.Title
			data["FormDescription"] = form.Description
			return c.Render(http.StatusOK, "add.html", data)
		}
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// ClearCompleted handles POST /clear-completed/. Idempotent.
func (h *TaskHandler) ClearCompleted(c echo.Context) error {
	n, err := h.service.ClearCompleted(c.Request().Context(), accountID(c))
	if err != nil {
		return err
	}

	metrics.TasksClearedTotal.Add(float64(n))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Toggle handles POST /toggle/:task_id/.
func (h *TaskHandler) Toggle(c echo.Context) error {
	task, err := h.service.Toggle(c.Request().Context(), accountID(c), c.Param("task_id"))
	if err != nil {
		return err
	}

	metrics.TasksToggledTotal.WithLabelValues(strconv.FormatBool(task.Completed)).Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm handles GET /edit/:task_id/.
func (h *TaskHandler) EditForm(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), accountID(c), c.Param("task_id"))
	if err != nil {
		return err
	}

	data := viewData(c, "Edit task")
	data["Task"] = task
	return c.Render(http.StatusOK, "edit.html", data)
}

// Edit handles POST /edit/:task_id/. An invalid submission redisplays the form
// with the stored task, without an error message.
func (h *TaskHandler) Edit(c echo.Context) error {
	var form taskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	input := ports.TaskInput{Title: form.Title, Description: form.Description}
	task, err := h.service.Edit(c.Request().Context(), accountID(c), c.Param("task_id"), input)
	if err != nil {
		if err == domain.ErrFieldsRequired {
			data := viewData(c, "Edit task")
			data["Task"] = task
			return c.Render(http.StatusOK, "edit.html", data)
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteForm handles GET /delete/:task_id/, the confirmation page.
func (h *TaskHandler) DeleteForm(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), accountID(c), c.Param("task_id"))
	if err != nil {
		return err
	}

	data := viewData(c, "Delete task")
	data["Task"] = task
	return c.Render(http.StatusOK, "delete.html", data)
}

// Delete handles POST /delete/:task_id/.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), accountID(c), c.Param("task_id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}
