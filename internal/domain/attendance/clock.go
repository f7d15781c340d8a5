package attendance

// Guards for the caller's own clock actions, checked against today's record
// before the action is forwarded. A nil record means nothing logged today.

func CheckClockIn(today *Record) error {
	if today != nil && today.LoginTime != nil {
		return ErrAlreadyClockedIn
	}
	return nil
}

func CheckBreakIn(today *Record) error {
	if err := checkOnShift(today); err != nil {
		return err
	}
	if today.OpenBreak() {
		return ErrBreakAlreadyOpen
	}
	return nil
}

func CheckBreakOut(today *Record) error {
	if err := checkOnShift(today); err != nil {
		return err
	}
	if !today.OpenBreak() {
		return ErrNoOpenBreak
	}
	return nil
}

func CheckClockOut(today *Record) error {
	return checkOnShift(today)
}

func checkOnShift(today *Record) error {
	if today == nil || today.LoginTime == nil {
		return ErrNotClockedIn
	}
	if today.LogoutTime != nil {
		return ErrAlreadyClockedOut
	}
	return nil
}
