package common

// CommissionStatus is the lifecycle tag of a commission.
type CommissionStatus string

const (
	StatusPending   CommissionStatus = "pending"
	StatusProcessed CommissionStatus = "processed"
	StatusPaid      CommissionStatus = "paid"
	StatusRefunded  CommissionStatus = "refunded"
	StatusDuplicate CommissionStatus = "duplicate"
	StatusFraud     CommissionStatus = "fraud"
	StatusCanceled  CommissionStatus = "canceled"
)

// CommissionStatuses lists every known status in display order.
var CommissionStatuses = []CommissionStatus{
	StatusPending,
	StatusProcessed,
	StatusPaid,
	StatusRefunded,
	StatusDuplicate,
	StatusFraud,
	StatusCanceled,
}

// CommissionType is the kind of event a commission was earned for.
type CommissionType string

const (
	TypeSale   CommissionType = "sale"
	TypeLead   CommissionType = "lead"
	TypeClick  CommissionType = "click"
	TypeCustom CommissionType = "custom"
)

// PayoutStatus is the lifecycle tag of a payout.
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutFailed     PayoutStatus = "failed"
	PayoutCanceled   PayoutStatus = "canceled"
)
