package order

// Status tracks an order through the shop's workflow. Provider
// sub-orders share the same set of states.
type Status string

const (
	StatusNew               Status = "new"
	StatusWaitingForPayment Status = "waiting_for_payment"
	StatusInProduction      Status = "in_production"
	StatusDelivered         Status = "delivered"
	StatusMounted           Status = "mounted"
	StatusFinished          Status = "finished"
)

// AllStatuses lists every status in workflow order
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusWaitingForPayment,
		StatusInProduction,
		StatusDelivered,
		StatusMounted,
		StatusFinished,
	}
}

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusWaitingForPayment, StatusInProduction,
		StatusDelivered, StatusMounted, StatusFinished:
		return true
	}
	return false
}

// String returns the status as a string
func (s Status) String() string {
	return string(s)
}

// Display returns the human readable Russian label
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "новый"
	case StatusWaitingForPayment:
		return "ожидает оплаты"
	case StatusInProduction:
		return "в работе"
	case StatusDelivered:
		return "доставлен"
	case StatusMounted:
		return "установлен"
	case StatusFinished:
		return "завершен"
	}
	return string(s)
}

// Category classifies what kind of product an order is for
type Category string

const (
	CategoryPVC        Category = "pvc"
	CategoryBlinds     Category = "blinds"
	CategoryAddons     Category = "addons"
	CategoryAluminum   Category = "aluminum"
	CategoryGlass      Category = "glass"
	CategorySteelDoors Category = "steel_doors"
)

// IsValid checks if the category is a known value
func (c Category) IsValid() bool {
	switch c {
	case CategoryPVC, CategoryBlinds, CategoryAddons,
		CategoryAluminum, CategoryGlass, CategorySteelDoors:
		return true
	}
	return false
}

// String returns the category as a string
func (c Category) String() string {
	return string(c)
}

// Display returns the human readable Russian label
func (c Category) Display() string {
	switch c {
	case CategoryPVC:
		return "ПВХ изделия"
	case CategoryBlinds:
		return "шторы и жалюзи"
	case CategoryAddons:
		return "дополнения"
	case CategoryAluminum:
		return "алюминий"
	case CategoryGlass:
		return "стеклопакеты"
	case CategorySteelDoors:
		return "стальные двери"
	}
	return string(c)
}
