package services

// ItemTypeOptions lists the selectable line-item types.
var ItemTypeOptions = []string{
	string(ItemTypeMaterial),
	string(ItemTypeService),
}

// DocumentStatusOptions lists the lifecycle states of a legal document.
var DocumentStatusOptions = []string{
	"draft",
	"active",
	"expired",
	"archived",
}

// EstimateStatusOptions lists the lifecycle states of a material estimate.
var EstimateStatusOptions = []string{
	"draft",
	"approved",
	"rejected",
}

// DocumentTypeOptions lists the recognised legal document kinds.
var DocumentTypeOptions = []string{
	"contract",
	"permit",
	"act",
	"order",
	"letter",
}
