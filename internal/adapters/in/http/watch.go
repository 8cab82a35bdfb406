package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/domain/model/kernel"
)

// WatchOrder handles GET /api/v1/orders/:id/watch - streams order snapshots
// as Server-Sent Events until the client disconnects or the server shuts
// down. Only changes committed after the subscription are streamed; clients
// fetch the current state with a regular GET first.
func (s *Server) WatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	snapshots, cancel := s.watchers.Subscribe(orderID)
	defer cancel()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case snapshot, open := <-snapshots:
			if !open {
				// Registry shut down; end the stream.
				return nil
			}

			data, err := json.Marshal(snapshot)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(response, "event: order.changed\ndata: %s\n\n", data); err != nil {
				// Client went away mid-write.
				return nil
			}
			response.Flush()
		}
	}
}
