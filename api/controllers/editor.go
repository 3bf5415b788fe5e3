package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/api/responses"
	"github.com/leafline/leafline-backend/api/validators"
	"github.com/leafline/leafline-backend/internal/editor"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
)

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

func parseIDList(raw []string, field string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id in "+field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type reorderSectionsRequest struct {
	SectionIDs []string `json:"section_ids" validate:"required,min=1,dive,required"`
}

type reorderComponentsRequest struct {
	ComponentIDs []string `json:"component_ids" validate:"required,min=1,dive,required"`
}

type moveSectionRequest struct {
	ToIndex int `json:"to_index" validate:"min=0"`
}

type moveComponentRequest struct {
	TargetID string `json:"target_id" validate:"required,uuid"`
}

type startDragRequest struct {
	Kind string `json:"kind" validate:"required,oneof=section component"`
	ID   string `json:"id" validate:"required,uuid"`
}

// EditorStartDrag records the drag the vendor's editor began. Only one drag
// kind can be active per vendor at a time.
func EditorStartDrag(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload startDragRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(payload.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id"))
			return
		}

		if err := svc.Drags().Start(vendorID, editor.DragKind(payload.Kind), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "dragging", "kind": payload.Kind})
	}
}

// EditorEndDrag clears the vendor's active drag without applying a move.
func EditorEndDrag(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.Drags().End(vendorID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// EditorMoveSection drops a dragged section at a new index.
func EditorMoveSection(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sectionID, err := pathUUID(r, "sectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moveSectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.MoveSection(r.Context(), vendorID, sectionID, payload.ToIndex)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorReorderSections applies a full explicit section ordering.
func EditorReorderSections(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reorderSectionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := parseIDList(payload.SectionIDs, "section_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.ReorderSections(r.Context(), vendorID, ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorRemoveSection deletes a section and everything inside it.
func EditorRemoveSection(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sectionID, err := pathUUID(r, "sectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveSection(r.Context(), vendorID, sectionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorReorderComponents applies a full explicit ordering within a section.
func EditorReorderComponents(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sectionID, err := pathUUID(r, "sectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reorderComponentsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := parseIDList(payload.ComponentIDs, "component_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.ReorderComponents(r.Context(), vendorID, sectionID, ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorMoveComponent drops a dragged component onto a target position within
// its section. Drops outside the source section are ignored.
func EditorMoveComponent(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		componentID, err := pathUUID(r, "componentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moveComponentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		targetID, err := uuid.Parse(payload.TargetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target id"))
			return
		}

		dto, err := svc.MoveComponent(r.Context(), vendorID, componentID, targetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorAddComponent appends a component to a section.
func EditorAddComponent(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload editor.AddComponentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ComponentKey = validators.SanitizeString(payload.ComponentKey, 64)

		dto, err := svc.AddComponent(r.Context(), vendorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// EditorUpdateComponent shallow-merges a props and bindings patch.
func EditorUpdateComponent(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		componentID, err := pathUUID(r, "componentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload editor.UpdateComponentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateComponent(r.Context(), vendorID, componentID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EditorRemoveComponent deletes a component and closes the ordering gap.
func EditorRemoveComponent(svc editor.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "editor service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		componentID, err := pathUUID(r, "componentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveComponent(r.Context(), vendorID, componentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
