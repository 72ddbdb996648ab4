package handler

import (
	"net/http"

	"smarthost/internal/properties/service"
	"smarthost/pkg/carousel"
	apperrors "smarthost/pkg/errors"
	httputil "smarthost/pkg/http"
	"smarthost/pkg/logger"
	"smarthost/pkg/presenter"
	"smarthost/pkg/sanitizer"
	"smarthost/pkg/search"

	"github.com/julienschmidt/httprouter"
)

// CarouselLayout tells the client how the featured cards paginate at the
// requested viewport width.
type CarouselLayout struct {
	ViewportWidth float64 `json:"viewportWidth"`
	VisibleCards  int     `json:"visibleCards"`
	TotalSlides   int     `json:"totalSlides"`
	AutoScroll    bool    `json:"autoScroll"`
}

type FeaturedResponse struct {
	Data     []presenter.PropertyCard `json:"data"`
	Carousel *CarouselLayout          `json:"carousel,omitempty"`
}

type PropertyHandler struct {
	service service.PropertyService
	log     *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log,
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	cards, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, cards, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *PropertyHandler) Featured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := httputil.QueryInt(r, "limit")
	if err == nil && limit < 0 {
		err = apperrors.InvalidInput("limit cannot be negative")
	}
	var viewport *float64
	if err == nil {
		viewport, err = httputil.QueryFloat(r, "viewport")
	}
	if err == nil && viewport != nil && *viewport <= 0 {
		err = apperrors.InvalidInput("viewport must be positive")
	}
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Featured", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	cards, err := h.service.Featured(r.Context(), limit)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Featured", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := FeaturedResponse{Data: cards}
	if viewport != nil {
		visible := carousel.VisibleCardsFor(*viewport)
		resp.Carousel = &CarouselLayout{
			ViewportWidth: *viewport,
			VisibleCards:  visible,
			TotalSlides:   carousel.TotalSlides(len(cards), visible),
			AutoScroll:    len(cards) > visible,
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Featured", "operation", "WriteJSON", "error", err)
	}
}

func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detail, err := h.service.GetDetail(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, detail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := parseSearchRequest(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func parseSearchRequest(r *http.Request) (service.SearchRequest, error) {
	query := r.URL.Query()
	req := service.SearchRequest{
		Query: search.Query{
			Location: sanitizer.NormalizeCity(query.Get("location")),
			CheckIn:  query.Get("check_in"),
			CheckOut: query.Get("check_out"),
		},
		Amenities: sanitizer.SanitizeAmenityNames(httputil.QueryList(r, "amenities")),
	}

	var err error
	if req.Guests, err = httputil.QueryInt(r, "guests"); err != nil {
		return req, err
	}
	minPrice, err := httputil.QueryFloat(r, "min_price")
	if err != nil {
		return req, err
	}
	if minPrice != nil {
		req.MinPrice = *minPrice
	}
	maxPrice, err := httputil.QueryFloat(r, "max_price")
	if err != nil {
		return req, err
	}
	if maxPrice != nil {
		req.MaxPrice = *maxPrice
	}
	return req, nil
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties", h.List)
	router.GET("/api/v1/properties/featured", h.Featured)
	router.GET("/api/v1/properties/search", h.Search)
	router.GET("/api/v1/properties/id/:id", h.GetByID)
}
