package catalogstub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type server struct {
	store  *Store
	logger *zap.SugaredLogger
}

// Handler mounts the catalog routes. The "resturant" spelling is the
// remote contract and must stay.
func Handler(store *Store, logger *zap.SugaredLogger) http.Handler {
	s := &server{store: store, logger: logger}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w, r, "route not found")
	})

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/category", s.listCategoriesHandler)
		r.Get("/resturant", s.listRestaurantsHandler)
		r.Get("/resturant/{id}", s.getRestaurantHandler)
		r.Get("/resturant/{id}/items", s.listItemsHandler)
		r.Get("/item/{id}", s.getItemHandler)
	})

	return r
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]any{
		"status":      "ok",
		"categories":  len(s.store.allCategories()),
		"restaurants": len(s.store.allRestaurants()),
		"timestamp":   time.Now().UTC(),
	})
}

func (s *server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, s.store.allCategories())
}

func (s *server) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, s.store.allRestaurants())
}

func (s *server) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	rest, ok := s.store.restaurant(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r, "restaurant not found")
		return
	}
	s.write(w, r, http.StatusOK, rest)
}

func (s *server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, ok := s.store.menu(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r, "restaurant not found")
		return
	}
	s.write(w, r, http.StatusOK, items)
}

func (s *server) getItemHandler(w http.ResponseWriter, r *http.Request) {
	it, ok := s.store.item(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r, "item not found")
		return
	}
	s.write(w, r, http.StatusOK, it)
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	s.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
	s.write(w, r, http.StatusNotFound, map[string]string{"error": msg})
}

func (s *server) write(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorw("write response", "path", r.URL.Path, "error", err)
	}
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, logger *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)

	go func() {
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Infow("shutting down catalog stub", "addr", addr)
		shutdown <- srv.Shutdown(sctx)
	}()

	logger.Infow("catalog stub has started", "addr", addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	logger.Infow("catalog stub has stopped", "addr", addr)
	return nil
}
