package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_command_dispatches_total",
		Help: "Command interactions routed to a handler",
	}, []string{"command", "status"})

	ComponentDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_component_dispatches_total",
		Help: "Component interactions routed to a view item",
	}, []string{"status"})

	DroppedInteractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_dropped_interactions_total",
		Help: "Interactions dropped because no local binding matched",
	}, []string{"kind"})

	RegistryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_registry_operations_total",
		Help: "Remote command registry operations by action",
	}, []string{"action", "status"})

	ComponentBindings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slashkit_component_bindings",
		Help: "Live custom_id bindings in the component table",
	})
)
