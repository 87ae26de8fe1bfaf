package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/absolutekim/FFYYPP/internal/flight"
)

// FlightHandler handles HTTP requests for flight lookups.
type FlightHandler struct {
	client *flight.Client
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(client *flight.Client) *FlightHandler {
	return &FlightHandler{client: client}
}

// Airports autocompletes airports and cities for a query.
func (h *FlightHandler) Airports(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query is required"})
	}
	if !h.client.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "flight search is not configured"})
	}

	airports, err := h.client.SearchAirports(c.Context(), query)
	if err != nil {
		slog.Error("airport lookup failed", "query", query, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "airport lookup failed"})
	}
	return c.JSON(fiber.Map{"airports": airports})
}

// Search fetches flight offers between two airports on a date.
func (h *FlightHandler) Search(c fiber.Ctx) error {
	fromID := c.Query("from_id")
	toID := c.Query("to_id")
	departDate := c.Query("depart_date")
	adults := fiber.Query(c, "adults", 1)

	if fromID == "" || toID == "" || departDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "from_id, to_id and depart_date are required",
		})
	}
	if !h.client.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "flight search is not configured"})
	}

	result, err := h.client.SearchFlights(c.Context(), fromID, toID, departDate, adults)
	if err != nil {
		slog.Error("flight search failed", "from", fromID, "to", toID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "flight search failed"})
	}
	return c.JSON(result)
}
