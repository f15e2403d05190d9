package services

// UnitOptions returns the list of measurement unit options for detail lines.
var UnitOptions = []string{
	"u",
	"m",
	"m²",
	"m³",
	"ml",
	"kg",
	"t",
	"h",
	"day",
	"lot",
	"set",
	"lumpsum",
}

// ActivityOptions lists the chapter activity kinds.
var ActivityOptions = []ActivityKind{
	ActivityGeneral,
	ActivityStructural,
	ActivityFinishing,
	ActivityElectrical,
	ActivityPlumbing,
	ActivityExterior,
}

// AdjustmentKindOptions lists the adjustment line kinds.
var AdjustmentKindOptions = []AdjustmentKind{
	KindAddition,
	KindReduction,
	KindDisplay,
}

// MarginOptions returns the margin percentage presets offered inline.
var MarginOptions = []int{0, 5, 10, 15, 20, 25, 30}
