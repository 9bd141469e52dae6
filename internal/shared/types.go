package shared

import "encoding/json"

// ========================================
// ASYNC TASK TYPES & QUEUES
// ========================================

const (
	TypeProposalReceivedEmail = "email:proposal_received"
	TypeProposalApprovedEmail = "email:proposal_approved"
	TypeProposalRejectedEmail = "email:proposal_rejected"
	TypeCleanupOrphanImages   = "storage:cleanup_orphan_images"

	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)

// CacheKeyApprovedCards là redis key của public gallery list.
// Share giữa card service (read/write) và proposal service
// (invalidate khi approve tạo card mới).
const CacheKeyApprovedCards = "cards:approved"

// CacheKeyCardsPattern match mọi card-derived cache entry.
// Mutation nào đụng vào cards cũng sweep cả namespace này.
const CacheKeyCardsPattern = "cards:*"

// CleanupOrphanImagesPayload là payload rỗng cho scheduled cleanup task
type CleanupOrphanImagesPayload struct{}

// ImageUpload là uploaded file đã đọc vào memory, share giữa
// card và proposal write path
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ========================================
// COMMANDER TIER
// ========================================

// Tier là ordinal rarity classification của một commander card
type Tier string

const (
	TierCommon    Tier = "Common"
	TierRare      Tier = "Rare"
	TierEpic      Tier = "Epic"
	TierLegendary Tier = "Legendary"
	TierMythic    Tier = "Mythic"
)

// tierRanks giữ thứ tự: Common < Rare < Epic < Legendary < Mythic
var tierRanks = map[Tier]int{
	TierCommon:    0,
	TierRare:      1,
	TierEpic:      2,
	TierLegendary: 3,
	TierMythic:    4,
}

// Valid báo tier có nằm trong enumeration không
func (t Tier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// Rank trả về vị trí ordinal của tier (Common = 0)
func (t Tier) Rank() int {
	return tierRanks[t]
}

// ========================================
// COMMANDER ATTRIBUTES
// ========================================

// Attributes là fixed 8-key numeric record (0-100) của một commander.
// Được share giữa card và proposal domain (tránh import cycle).
type Attributes struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Charisma     int `json:"charisma"`
	Leadership   int `json:"leadership"`
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	Speed        int `json:"speed"`
	Health       int `json:"health"`
}

// Serialize encode attributes thành JSON text để lưu vào DB column
func (a Attributes) Serialize() string {
	// Marshal của fixed struct không thể fail
	b, _ := json.Marshal(a)
	return string(b)
}

// ParseAttributes decode stored JSON text về Attributes.
// Malformed/corrupt data degrade về zeroed record thay vì fail read.
func ParseAttributes(raw string) Attributes {
	var a Attributes
	if raw == "" {
		return Attributes{}
	}
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return Attributes{}
	}
	return a
}

// InRange kiểm tra tất cả 8 keys nằm trong [0, 100]
func (a Attributes) InRange() bool {
	for _, v := range []int{
		a.Strength, a.Intelligence, a.Charisma, a.Leadership,
		a.Attack, a.Defense, a.Speed, a.Health,
	} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
