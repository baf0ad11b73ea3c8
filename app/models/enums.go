package models

import "github.com/samber/lo"

type BodyType string

const (
	BodyAny     BodyType = "any"
	BodySedan   BodyType = "sedan"
	BodySUV     BodyType = "suv"
	BodyPickup  BodyType = "pickup"
	BodyWagon   BodyType = "wagon"
	BodyVan     BodyType = "van"
	BodyMinivan BodyType = "minivan"
)

var BodyTypes = []BodyType{BodyAny, BodySedan, BodySUV, BodyPickup, BodyWagon, BodyVan, BodyMinivan}

func (b BodyType) Valid() bool { return lo.Contains(BodyTypes, b) }

type FuelType string

const (
	FuelAny      FuelType = "any"
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelGas      FuelType = "gas"
)

var FuelTypes = []FuelType{FuelAny, FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelGas}

func (f FuelType) Valid() bool { return lo.Contains(FuelTypes, f) }

// MaxFuelTypes bounds the multi-select fuel attribute of a listing.
const MaxFuelTypes = 2

type Steering string

const (
	SteeringLeft  Steering = "left"
	SteeringRight Steering = "right"
)

var Steerings = []Steering{SteeringLeft, SteeringRight}

func (s Steering) Valid() bool { return lo.Contains(Steerings, s) }

type Gearbox string

const (
	GearboxAny       Gearbox = "any"
	GearboxManual    Gearbox = "manual"
	GearboxAutomatic Gearbox = "automatic"
)

var Gearboxes = []Gearbox{GearboxAny, GearboxManual, GearboxAutomatic}

func (g Gearbox) Valid() bool { return lo.Contains(Gearboxes, g) }

type Color string

const (
	ColorAny   Color = "any"
	ColorBlack Color = "black"
	ColorWhite Color = "white"
	ColorRed   Color = "red"
	ColorBlue  Color = "blue"
)

var Colors = []Color{ColorAny, ColorBlack, ColorWhite, ColorRed, ColorBlue}

func (c Color) Valid() bool { return lo.Contains(Colors, c) }
