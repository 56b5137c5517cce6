// Package presence decides whether the motion system is active: either the
// clock is inside the guard window, or nobody's phone answers on the LAN.
package presence

import (
	"context"
	"log"
	"time"
)

type Detector struct {
	Window    GuardWindow
	Addresses []string
	Checker   Checker
	Now       func() time.Time
}

func NewDetector(window GuardWindow, addrs []string, checker Checker) *Detector {
	return &Detector{
		Window:    window,
		Addresses: addrs,
		Checker:   checker,
		Now:       time.Now,
	}
}

func (d *Detector) InGuardWindow() bool {
	return d.Window.Contains(d.Now())
}

// NobodyHome pings the configured addresses. With no addresses configured
// there is nobody to detect, so the system counts as active.
func (d *Detector) NobodyHome(ctx context.Context) (bool, error) {
	if len(d.Addresses) == 0 {
		log.Println("No IP addresses configured - skipping IP check")
		return true, nil
	}
	alive, err := d.Checker.Alive(ctx, d.Addresses)
	if err != nil {
		return false, err
	}
	if alive {
		log.Println("IP detected - someone is home")
		return false, nil
	}
	log.Println("IP inactive - nobody is home - system is active")
	return true, nil
}

// SystemActive reports whether notifications should be sent.
func (d *Detector) SystemActive(ctx context.Context) (bool, error) {
	if d.InGuardWindow() {
		log.Printf("In guard window %s - sending notifications", d.Window)
		return true, nil
	}
	return d.NobodyHome(ctx)
}
