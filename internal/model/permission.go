package model

// PermissionLevel : уровень доступа, который можно выдать гранту
type PermissionLevel string

const (
	PermissionView            PermissionLevel = "view"
	PermissionViewAndDownload PermissionLevel = "view-and-download"
)

// PermissionLevels : фиксированный набор уровней в порядке отображения
var PermissionLevels = []PermissionLevel{PermissionView, PermissionViewAndDownload}

var permissionDescriptions = map[PermissionLevel]string{
	PermissionView:            "View Only",
	PermissionViewAndDownload: "View and Download",
}

// Valid : true только для уровней из фиксированного набора
func (p PermissionLevel) Valid() bool {
	_, ok := permissionDescriptions[p]
	return ok
}

func (p PermissionLevel) Description() string {
	return permissionDescriptions[p]
}

// ParsePermissionLevel : разбор значения на границе системы, неизвестные значения отклоняются
func ParsePermissionLevel(value string) (PermissionLevel, error) {
	level := PermissionLevel(value)
	if !level.Valid() {
		return "", NewValidationError(CodeInvalidPermission, "permission", value)
	}
	return level, nil
}

// EffectivePermission : вычисляемый уровень доступа, не хранится в БД
type EffectivePermission string

const (
	EffectiveOwner           EffectivePermission = "owner"
	EffectiveView            EffectivePermission = "view"
	EffectiveViewAndDownload EffectivePermission = "view-and-download"
	EffectiveDenied          EffectivePermission = "denied"
)

// EffectiveFromGrant : уровень гранта как эффективный уровень
func EffectiveFromGrant(level PermissionLevel) EffectivePermission {
	switch level {
	case PermissionView:
		return EffectiveView
	case PermissionViewAndDownload:
		return EffectiveViewAndDownload
	default:
		return EffectiveDenied
	}
}

// CanView : любой уровень кроме denied
func (e EffectivePermission) CanView() bool {
	return e == EffectiveOwner || e == EffectiveView || e == EffectiveViewAndDownload
}

// CanDownload : владелец или view-and-download
func (e EffectivePermission) CanDownload() bool {
	return e == EffectiveOwner || e == EffectiveViewAndDownload
}

// DenialReason : причина отказа в выдаче ссылки
type DenialReason string

const (
	ReasonDownloadNotPermitted DenialReason = "download-not-permitted"
	ReasonAccessDenied         DenialReason = "access-denied"
)
