package order

// PropagateStatus lifts the sub-order status onto the order when the
// loaded sub-orders agree on a single one. With no sub-orders or a mix
// of statuses the order is left alone. Returns true when the order's
// status actually changed.
//
// Called explicitly after a sub-order changes, never as a save hook,
// so a plain order edit cannot fight the supplier feed.
func PropagateStatus(o *Order) bool {
	if len(o.ProviderOrders) == 0 {
		return false
	}

	status := o.ProviderOrders[0].Status
	for _, po := range o.ProviderOrders[1:] {
		if po.Status != status {
			return false
		}
	}

	if o.Status == status {
		return false
	}
	o.Status = status
	o.Touch()
	return true
}
