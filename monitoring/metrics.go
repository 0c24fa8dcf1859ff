package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Tickets sold, by class",
		},
		[]string{"class"},
	)

	purchaseRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchase_rejected_total",
			Help: "Rejected purchase attempts, by reason",
		},
		[]string{"reason"},
	)

	refundRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refund_requests_total",
			Help: "Refund requests submitted",
		},
	)

	refundDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refund_decisions_total",
			Help: "Refund decisions, by outcome",
		},
		[]string{"outcome"},
	)

	inventoryFaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_faults_total",
			Help: "Detected available>total accounting faults",
		},
	)
)

func TicketsSold(class string, qty int) {
	ticketsSold.WithLabelValues(class).Add(float64(qty))
}

func PurchaseRejected(reason string) {
	purchaseRejected.WithLabelValues(reason).Inc()
}

func RefundRequested() {
	refundRequests.Inc()
}

func RefundDecided(outcome string) {
	refundDecisions.WithLabelValues(outcome).Inc()
}

func InventoryFault() {
	inventoryFaults.Inc()
}
