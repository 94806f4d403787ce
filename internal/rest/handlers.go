// internal/rest/handlers.go
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"librarium/internal/catalog"
)

// Handler exposes the catalog service over HTTP. It validates and decodes
// requests, delegates to the service, and maps typed failures to statuses;
// it never reaches past the Service interface.
type Handler struct {
	svc catalog.Service
}

// NewHandler creates a Handler for svc.
func NewHandler(svc catalog.Service) *Handler {
	return &Handler{svc: svc}
}

type itemRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddItem(r.Context(), req.ID, req.Title, req.Author, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Items(r.Context()))
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Item(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), chi.URLParam(r, "id"), req.Title, req.Author, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentHolder(w http.ResponseWriter, r *http.Request) {
	holder, loaned, err := h.svc.CurrentHolder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !loaned {
		writeJSON(w, http.StatusOK, struct {
			Loaned bool `json:"loaned"`
		}{false})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Loaned bool           `json:"loaned"`
		Holder catalog.Holder `json:"holder"`
	}{true, holder})
}

type holderRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) registerHolder(w http.ResponseWriter, r *http.Request) {
	var req holderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	holder, err := h.svc.RegisterHolder(r.Context(), req.ID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, holder)
}

func (h *Handler) listHolders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Holders(r.Context()))
}

func (h *Handler) getHolder(w http.ResponseWriter, r *http.Request) {
	holder, err := h.svc.Holder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holder)
}

func (h *Handler) renameHolder(w http.ResponseWriter, r *http.Request) {
	var req holderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	holder, err := h.svc.RenameHolder(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holder)
}

func (h *Handler) deregisterHolder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeregisterHolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) holderLoans(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.HolderLoans(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) loanItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID   string `json:"item_id"`
		HolderID string `json:"holder_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := h.svc.LoanItem(r.Context(), req.ItemID, req.HolderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *Handler) listLoans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Loans(r.Context()))
}

func (h *Handler) returnItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ReturnItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := catalog.Query{
		Title:    params.Get("title"),
		Author:   params.Get("author"),
		Category: params.Get("category"),
		SortBy:   catalog.SortKey(params.Get("sort")),
	}

	items, err := h.svc.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary(r.Context()))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{"ok"})
}
