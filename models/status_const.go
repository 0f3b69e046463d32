package models

// статусы заявки на возмещение расходов, значения задает бекенд
type ClaimStatusID int

const (
	ClaimStatusPending  ClaimStatusID = 1 // на рассмотрении
	ClaimStatusRejected ClaimStatusID = 2 // требует исправления
	ClaimStatusApproved ClaimStatusID = 3 // согласована
	ClaimStatusPaid     ClaimStatusID = 4 // оплачена
	ClaimStatusDeleted  ClaimStatusID = 9 // удалена
)

// вид бейджа статуса для отображения
type StatusBadgeKind string

const (
	BadgeInfo    StatusBadgeKind = "info"
	BadgeSuccess StatusBadgeKind = "success"
	BadgeWarning StatusBadgeKind = "warning"
	BadgeDanger  StatusBadgeKind = "danger"
	BadgeNeutral StatusBadgeKind = "neutral"
)

const UnknownStatusLabel = "неизвестно"

var statusLabels = map[ClaimStatusID]string{
	ClaimStatusPending:  "на рассмотрении",
	ClaimStatusRejected: "требует исправления",
	ClaimStatusApproved: "согласована",
	ClaimStatusPaid:     "оплачена",
	ClaimStatusDeleted:  "удалена",
}

var statusBadges = map[ClaimStatusID]StatusBadgeKind{
	ClaimStatusPending:  BadgeInfo,
	ClaimStatusRejected: BadgeWarning,
	ClaimStatusApproved: BadgeSuccess,
	ClaimStatusPaid:     BadgeSuccess,
	ClaimStatusDeleted:  BadgeDanger,
}

// GetLabel возвращает локальное название статуса,
// для неизвестных значений - нейтральная заглушка, не ошибка
func (s ClaimStatusID) GetLabel() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return UnknownStatusLabel
}

func (s ClaimStatusID) GetBadge() StatusBadgeKind {
	if badge, ok := statusBadges[s]; ok {
		return badge
	}
	return BadgeNeutral
}
