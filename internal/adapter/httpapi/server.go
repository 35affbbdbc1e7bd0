package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/commerce-service/internal/domain"
	"github.com/example/commerce-service/internal/platform/logger"
	"github.com/example/commerce-service/internal/usecase"
	"github.com/gorilla/mux"
)

// OrderGetter and OrderLister are the read use cases the server exposes.
type OrderGetter interface {
	Execute(ctx context.Context, id string) (*domain.Order, error)
}

type OrderLister interface {
	Execute(ctx context.Context) ([]*domain.Order, error)
}

type Server struct {
	Router  *mux.Router
	UCGet   OrderGetter
	UCList  OrderLister
	Log     *logger.Logger
	Metrics http.Handler
}

func NewServer(get OrderGetter, list OrderLister, log *logger.Logger, metrics http.Handler) *Server {
	s := &Server{Router: mux.NewRouter(), UCGet: get, UCList: list, Log: log, Metrics: metrics}
	s.Router.HandleFunc("/api/order/{id}", s.handleGet).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/orders", s.handleList).Methods(http.MethodGet)
	if metrics != nil {
		s.Router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	return s
}

type itemView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
}

type orderView struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Total      float64    `json:"total"`
	Items      []itemView `json:"items"`
}

func toView(o *domain.Order) orderView {
	v := orderView{ID: o.ID(), CustomerID: o.CustomerID(), Total: o.Total()}
	for _, it := range o.Items() {
		v.Items = append(v.Items, itemView{
			ID:        it.ID(),
			Name:      it.Name(),
			Price:     it.Price(),
			ProductID: it.ProductID(),
			Quantity:  it.Quantity(),
		})
	}
	return v
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	o, err := s.UCGet.Execute(r.Context(), id)
	if err != nil {
		if usecase.IsNotFound(err) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.Log.Error("get order failed", "order_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toView(o))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := s.UCList.Execute(r.Context())
	if err != nil {
		s.Log.Error("list orders failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toView(o))
	}
	writeJSON(w, views)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
