package quote

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tiendacr/backend-tienda/internal/breakdown"
	"github.com/tiendacr/backend-tienda/internal/common"
	"github.com/tiendacr/backend-tienda/internal/order"
	"github.com/tiendacr/backend-tienda/internal/tax"
)

// Handler exposes the quote and order-breakdown endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type quoteAddress struct {
	Province string `json:"province"`
	Canton   string `json:"canton"`
}

type quoteItem struct {
	Qty       int   `json:"qty" validate:"required,gt=0"`
	UnitPrice int64 `json:"unitPrice" validate:"gte=0"`
	// TaxRatePercent nil means the catalog stores no rate and 13% applies;
	// an explicit 0 is honored as zero tax.
	TaxRatePercent  *float64 `json:"taxRatePercent" validate:"omitempty,gte=0,lte=100"`
	UnitWeightGrams int64    `json:"unitWeightGrams" validate:"gte=0"`
}

type quoteRequest struct {
	Items   []quoteItem  `json:"items" validate:"required,min=1,dive"`
	Address quoteAddress `json:"address"`
	Regime  string       `json:"regime"`
}

// Quote prices a draft cart against the current tariff and tax regime.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", err.Error())
			return
		}
	}
	items := make([]breakdown.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, breakdown.LineItem{
			Qty:             it.Qty,
			UnitPrice:       it.UnitPrice,
			TaxRateBps:      percentToBps(it.TaxRatePercent),
			UnitWeightGrams: it.UnitWeightGrams,
		})
	}
	b := h.Svc.QuoteCart(items, breakdown.Address{
		Province: req.Address.Province,
		Canton:   req.Address.Canton,
	}, tax.ParseRegime(req.Regime))
	common.JSONData(w, http.StatusOK, b)
}

// OrderBreakdown returns the four-part breakdown for an existing order.
func (h *Handler) OrderBreakdown(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	b, err := h.Svc.OrderBreakdown(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to compute breakdown", nil)
		return
	}
	common.JSONData(w, http.StatusOK, b)
}

func percentToBps(pct *float64) *int32 {
	if pct == nil {
		return nil
	}
	bps := int32(math.Round(*pct * 100))
	return &bps
}
