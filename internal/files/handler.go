package files

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/khunghaydien/AI-Scanner-Backend/pkg/handlers"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/pagination"
	"github.com/khunghaydien/AI-Scanner-Backend/pkg/routes"
)

// OwnerHeader conveys the authenticated owner id. Authentication itself is
// handled upstream; this service trusts the header.
const OwnerHeader = "X-Owner-ID"

// Handler provides HTTP endpoints for file operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a file handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "files"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the file endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/files",
		Tags:        []string{"Files"},
		Description: "File upload, listing, deletion, and transformation",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/data", Handler: h.Data},
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "POST", Pattern: "/{id}/artifacts", Handler: h.AppendArtifacts},
			{Method: "DELETE", Pattern: "", Handler: h.Delete},
			{Method: "POST", Pattern: "/transform", Handler: h.Transform},
			{Method: "POST", Pattern: "/merge", Handler: h.Merge},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req := pagination.CursorRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), owner, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, err := h.sys.Find(r.Context(), owner, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, file)
}

func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, contentType, err := h.sys.Data(r.Context(), owner, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondBytes(w, http.StatusOK, contentType, data)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	items, err := h.readItems(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := UploadCommand{
		DisplayName: r.FormValue("name"),
		Items:       items,
	}

	file, err := h.sys.Upload(r.Context(), owner, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, file)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, err := h.sys.Update(r.Context(), owner, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, file)
}

func (h *Handler) AppendArtifacts(w http.ResponseWriter, r *http.Request) {
	owner, id, err := ownerAndID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	items, err := h.readItems(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, err := h.sys.AppendArtifacts(r.Context(), owner, id, items)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, file)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var body struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), owner, body.IDs); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: missing file", ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := readPart(file, header, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := TransformCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	if desc := r.FormValue("description"); desc != "" {
		cmd.Description = &desc
	}
	cmd.Color, _ = strconv.ParseBool(r.FormValue("color"))

	result, err := h.sys.Transform(r.Context(), owner, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var body struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, err := h.sys.Merge(r.Context(), owner, body.IDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, file)
}

func (h *Handler) readItems(r *http.Request) ([]UploadItem, error) {
	if r.MultipartForm == nil {
		return nil, fmt.Errorf("%w: multipart form required", ErrInvalidInput)
	}

	parts := r.MultipartForm.File["files"]
	items := make([]UploadItem, 0, len(parts))

	for _, header := range parts {
		part, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable part %q", ErrInvalidInput, header.Filename)
		}

		data, err := readPart(part, header, h.maxUploadSize)
		part.Close()
		if err != nil {
			return nil, err
		}

		items = append(items, UploadItem{
			Data:        data,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	return items, nil
}

func readPart(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return data, nil
}

func ownerID(r *http.Request) (uuid.UUID, error) {
	owner, err := uuid.Parse(r.Header.Get(OwnerHeader))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s header", OwnerHeader)
	}
	return owner, nil
}

func ownerAndID(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	owner, err := ownerID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}

	return owner, id, nil
}
