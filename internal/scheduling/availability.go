package scheduling

// DeriveAvailability maps the number of confirmed appointments a doctor
// holds to the externally visible availability status. The manual offline
// override and the in_progress forcing rule are applied by the service.
func DeriveAvailability(confirmedCount int) AvailabilityStatus {
	switch {
	case confirmedCount <= 0:
		return AvailabilityAvailable
	case confirmedCount == 1:
		return AvailabilityBusy
	default:
		return AvailabilityBooked
	}
}
