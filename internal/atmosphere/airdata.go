package atmosphere

// AirData holds the flow quantities of a body moving through Conditions.
type AirData struct {
	SoundSpeed float64 `json:"sound_speed"` // m/s
	Dynamic    float64 `json:"dynamic"`     // dynamic pressure, Pa
	Mach       float64 `json:"mach"`
}

// NewAirData computes air data for a body at speed m/s. Mach is zero when
// the speed of sound is zero.
func NewAirData(c Conditions, speed float64) AirData {
	a := withSound(Conditions{TempK: c.TempK}).Sound
	ad := AirData{
		SoundSpeed: a,
		Dynamic:    0.5 * c.Rho * speed * speed,
	}
	if a > 0 {
		ad.Mach = speed / a
	}
	return ad
}
