package controllers

import (
	"net/http"

	"github.com/beggy/beggy-backend/api/responses"
	"github.com/beggy/beggy-backend/api/validators"
	"github.com/beggy/beggy-backend/internal/containers"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/logger"
)

// Container handlers serve both /bags and /suitcases; kind is bound when the route is mounted.

func containerServiceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable")
}

// ContainerList lists the caller's containers of kind. Supports status, limit and cursor.
func ContainerList(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageParams, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := validators.ParseQueryEnum(r, "status", enums.ParseContainerStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), userID, kind, containers.ListParams{Params: pageParams, Status: status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func ContainerCreate(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body containers.CreateContainerInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Create(r.Context(), userID, kind, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, container)
	}
}

func ContainerGet(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		containerID, err := validators.ParseUUIDParam(r, "containerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Get(r.Context(), userID, kind, containerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, container)
	}
}

func ContainerUpdate(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		containerID, err := validators.ParseUUIDParam(r, "containerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body containers.UpdateContainerInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Update(r.Context(), userID, kind, containerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, container)
	}
}

func ContainerDelete(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		containerID, err := validators.ParseUUIDParam(r, "containerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, kind, containerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

// ContainerAddItem places an item in the container. Exceeded limits are returned as warnings, not errors.
func ContainerAddItem(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return containerItemHandler(svc, kind, logg, true)
}

// ContainerRemoveItem takes an item out of the container.
func ContainerRemoveItem(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger) http.HandlerFunc {
	return containerItemHandler(svc, kind, logg, false)
}

func containerItemHandler(svc containers.Service, kind enums.ContainerKind, logg *logger.Logger, add bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, containerServiceUnavailable())
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		containerID, err := validators.ParseUUIDParam(r, "containerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var result containers.AssignmentResult
		if add {
			result, err = svc.AddItem(r.Context(), userID, kind, containerID, itemID)
		} else {
			result, err = svc.RemoveItem(r.Context(), userID, kind, containerID, itemID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if len(result.Violations) == 0 {
			responses.WriteSuccess(w, result.Container)
			return
		}
		warnings := make([]any, 0, len(result.Violations))
		for _, v := range result.Violations {
			warnings = append(warnings, v)
		}
		responses.WriteSuccessWithWarnings(w, http.StatusOK, result.Container, warnings)
	}
}
