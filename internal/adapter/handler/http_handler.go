package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/hadik12/items-api/internal/core/domain"
	"github.com/hadik12/items-api/internal/core/service"
)

const defaultLimit = 10

type HTTPHandler struct {
	items    *service.ItemService
	logger   *logrus.Logger
	validate *validator.Validate
}

type createItemRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	InStock     *bool    `json:"in_stock"`
}

type updateItemRequest struct {
	Name        *string        `json:"name" validate:"omitnil,min=1"`
	Description optionalString `json:"description"`
	Price       *float64       `json:"price" validate:"omitnil,gte=0"`
	InStock     *bool          `json:"in_stock"`
}

// optionalString records whether its field appeared in the payload at
// all, so an explicit `"description": null` clears the column instead
// of being mistaken for an omitted field.
type optionalString struct {
	Value *string
	Set   bool
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type listItemsQuery struct {
	Limit    int      `json:"limit" validate:"gte=1,lte=100"`
	Offset   int      `json:"offset" validate:"gte=0"`
	MinPrice *float64 `json:"min_price" validate:"omitnil,gte=0"`
	MaxPrice *float64 `json:"max_price" validate:"omitnil,gte=0"`
	Q        *string  `json:"q" validate:"omitnil,min=1"`
}

type itemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewHTTPHandler(items *service.ItemService, logger *logrus.Logger) *HTTPHandler {
	validate := validator.New()
	// Report violations under the wire field names, not Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &HTTPHandler{
		items:    items,
		logger:   logger,
		validate: validate,
	}
}

// NewRouter wires the middleware chain and the item routes. The five
// /items routes sit behind the API-key gate; the root status route
// does not.
func NewRouter(h *HTTPHandler, apiKey string, logger *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)

	r.Get("/", h.Root)

	r.Route("/items", func(r chi.Router) {
		r.Use(APIKeyMiddleware(apiKey))
		r.Post("/", h.CreateItem)
		r.Get("/", h.ListItems)
		r.Get("/{id}", h.GetItem)
		r.Put("/{id}", h.UpdateItem)
		r.Delete("/{id}", h.DeleteItem)
	})

	return r
}

func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"docs":   "/docs",
	})
}

func (h *HTTPHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []fieldError{{Field: "body", Message: "invalid JSON body"}})
		return
	}

	if errs := h.validateStruct(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	item := domain.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		InStock:     true,
	}
	if req.InStock != nil {
		item.InStock = *req.InStock
	}

	h.logger.Infof("creating item %q", item.Name)

	created, err := h.items.Create(r.Context(), item)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(*created))
}

func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter, errs := h.parseListQuery(r)
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	h.logger.Infof("listing items limit=%d offset=%d", filter.Limit, filter.Offset)

	items, err := h.items.List(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	h.logger.Infof("fetching item id=%d", id)

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []fieldError{{Field: "body", Message: "invalid JSON body"}})
		return
	}

	if errs := h.validateStruct(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	h.logger.Infof("updating item id=%d", id)

	patch := domain.ItemPatch{
		Name: req.Name,
		Description: domain.OptionalString{
			Value: req.Description.Value,
			Set:   req.Description.Set,
		},
		Price:   req.Price,
		InStock: req.InStock,
	}

	item, err := h.items.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *HTTPHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	h.logger.Infof("deleting item id=%d", id)

	if err := h.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemID parses the {id} path segment; a non-integer id is a
// validation failure, rejected before any query runs.
func (h *HTTPHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeValidationErrors(w, []fieldError{{Field: "id", Message: "must be an integer"}})
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) parseListQuery(r *http.Request) (domain.ItemFilter, []fieldError) {
	var errs []fieldError
	values := r.URL.Query()

	query := listItemsQuery{Limit: defaultLimit}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fieldError{Field: "limit", Message: "must be an integer"})
		} else {
			query.Limit = n
		}
	}
	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fieldError{Field: "offset", Message: "must be an integer"})
		} else {
			query.Offset = n
		}
	}
	if raw := values.Get("min_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fieldError{Field: "min_price", Message: "must be a number"})
		} else {
			query.MinPrice = &f
		}
	}
	if raw := values.Get("max_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fieldError{Field: "max_price", Message: "must be a number"})
		} else {
			query.MaxPrice = &f
		}
	}
	if _, present := values["q"]; present {
		q := values.Get("q")
		query.Q = &q
	}

	if len(errs) > 0 {
		return domain.ItemFilter{}, errs
	}
	if errs := h.validateStruct(query); len(errs) > 0 {
		return domain.ItemFilter{}, errs
	}

	filter := domain.ItemFilter{
		Limit:    query.Limit,
		Offset:   query.Offset,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
	}
	if query.Q != nil {
		filter.NameQuery = *query.Q
	}
	return filter, nil
}

func (h *HTTPHandler) validateStruct(v interface{}) []fieldError {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "body", Message: "invalid payload"}}
	}

	errs := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithField("request_id", RequestID(r.Context())).
		Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		InStock:     item.InStock,
		CreatedAt:   item.CreatedAt,
	}
}
