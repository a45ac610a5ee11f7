package request

// RequestStatus is the state of a cargo request. The model is a flat
// set, not a state machine: an admin may move a request from any
// status to any other status.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusInTransit RequestStatus = "in-transit"
	RequestStatusDelivered RequestStatus = "delivered"
	RequestStatusCancelled RequestStatus = "cancelled"
)

func (rs RequestStatus) String() string {
	return string(rs)
}

func (rs RequestStatus) IsValid() bool {
	switch rs {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusInTransit, RequestStatusDelivered, RequestStatusCancelled:
		return true
	default:
		return false
	}
}

// GetAllRequestStatuses returns all valid request statuses
func GetAllRequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusPending,
		RequestStatusApproved,
		RequestStatusRejected,
		RequestStatusInTransit,
		RequestStatusDelivered,
		RequestStatusCancelled,
	}
}

// CargoSize is the declared size class of a cargo request.
type CargoSize string

const (
	CargoSizeBig     CargoSize = "big"
	CargoSizeSmall   CargoSize = "small"
	CargoSizeUnsized CargoSize = "unsized"
)

func (cs CargoSize) String() string {
	return string(cs)
}

func (cs CargoSize) IsValid() bool {
	switch cs {
	case CargoSizeBig, CargoSizeSmall, CargoSizeUnsized:
		return true
	default:
		return false
	}
}
