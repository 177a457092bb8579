package components

import "math/bits"

// ArtifactID names one of the twelve permanent run modifiers
type ArtifactID string

const (
	ArtifactDoubleShot   ArtifactID = "doubleShot"
	ArtifactSplash       ArtifactID = "splash"
	ArtifactPoison       ArtifactID = "poison"
	ArtifactFreeze       ArtifactID = "freeze"
	ArtifactLeech        ArtifactID = "leech"
	ArtifactDrone        ArtifactID = "drone"
	ArtifactShield       ArtifactID = "shield"
	ArtifactPiercing     ArtifactID = "piercing"
	ArtifactRapidFire    ArtifactID = "rapidFire"
	ArtifactMagnet       ArtifactID = "magnet"
	ArtifactCritMaster   ArtifactID = "critMaster"
	ArtifactRegeneration ArtifactID = "regeneration"

	// ArtifactFullHeal is the fallback reward offered once every artifact is owned
	ArtifactFullHeal ArtifactID = "heal"
)

// Artifact is the display record of an artifact
type Artifact struct {
	ID          ArtifactID `json:"id" msgpack:"id"`
	Name        string     `json:"name" msgpack:"name"`
	Icon        string     `json:"icon" msgpack:"icon"`
	Description string     `json:"desc" msgpack:"desc"`
}

// Artifacts is the catalogue in bit order of ArtifactSet
var Artifacts = []Artifact{
	{ID: ArtifactDoubleShot, Name: "더블 프로세서", Icon: "⚡", Description: "공격 시 미사일을 한 번 더 발사합니다."},
	{ID: ArtifactSplash, Name: "바이러스 확산", Icon: "🦠", Description: "처치 시 주변 적에게 데미지를 줍니다."},
	{ID: ArtifactPoison, Name: "메모리 누수", Icon: "🧪", Description: "공격받은 적이 지속 데미지를 입습니다."},
	{ID: ArtifactFreeze, Name: "시스템 동결", Icon: "❄", Description: "적들의 접근 속도가 20% 느려집니다."},
	{ID: ArtifactLeech, Name: "데이터 흡수", Icon: "🩸", Description: "적 처치 시 체력을 2 회복합니다."},
	{ID: ArtifactDrone, Name: "보안 드론", Icon: "🤖", Description: "1초마다 자동으로 적을 공격합니다."},
	{ID: ArtifactShield, Name: "방어막", Icon: "🛡", Description: "피격 시 30% 확률로 데미지를 무시합니다."},
	{ID: ArtifactPiercing, Name: "관통탄", Icon: "🎯", Description: "미사일이 적을 관통하여 추가 데미지를 줍니다."},
	{ID: ArtifactRapidFire, Name: "오버클럭", Icon: "🔥", Description: "미사일 속도가 50% 증가합니다."},
	{ID: ArtifactMagnet, Name: "데이터 수집기", Icon: "🧲", Description: "경험치 획득량이 50% 증가합니다."},
	{ID: ArtifactCritMaster, Name: "취약점 분석", Icon: "💥", Description: "치명타 데미지가 3배로 증가합니다."},
	{ID: ArtifactRegeneration, Name: "자가 복구", Icon: "💚", Description: "5초마다 체력을 5 회복합니다."},
}

// FullHealArtifact is offered when nothing is left to unlock
var FullHealArtifact = Artifact{ID: ArtifactFullHeal, Name: "시스템 복구", Icon: "❤", Description: "체력을 모두 회복합니다."}

// ArtifactSet is a fixed-size capability set, one bit per catalogue entry
type ArtifactSet uint16

// artifactBit returns the bit of id, or 0 for unknown ids
func artifactBit(id ArtifactID) ArtifactSet {
	for i, a := range Artifacts {
		if a.ID == id {
			return 1 << i
		}
	}
	return 0
}

// Has reports membership
func (s ArtifactSet) Has(id ArtifactID) bool {
	b := artifactBit(id)
	return b != 0 && s&b != 0
}

// Add returns the set with id included; unknown ids leave the set unchanged
func (s ArtifactSet) Add(id ArtifactID) ArtifactSet {
	return s | artifactBit(id)
}

// Count returns the number of owned artifacts
func (s ArtifactSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// Owned lists owned artifact ids in catalogue order
func (s ArtifactSet) Owned() []ArtifactID {
	ids := make([]ArtifactID, 0, s.Count())
	for i, a := range Artifacts {
		if s&(1<<i) != 0 {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Unowned lists catalogue entries not in the set
func (s ArtifactSet) Unowned() []Artifact {
	out := make([]Artifact, 0, len(Artifacts)-s.Count())
	for i, a := range Artifacts {
		if s&(1<<i) == 0 {
			out = append(out, a)
		}
	}
	return out
}

// LookupArtifact finds a catalogue entry (including the full-heal fallback)
func LookupArtifact(id ArtifactID) (Artifact, bool) {
	if id == ArtifactFullHeal {
		return FullHealArtifact, true
	}
	for _, a := range Artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}
