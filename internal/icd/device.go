package icd

// DeviceState is a full copy of every component's state, used for
// persistence snapshots and the monitoring surface.
type DeviceState struct {
	Heart      HeartState      `json:"heart"`
	Generator  GeneratorState  `json:"generator"`
	Primary    MonitorState    `json:"primary_monitor"`
	Redundant  MonitorState    `json:"redundant_monitor"`
	Controller ControllerState `json:"controller"`
}

// Device composes the heart model, redundant monitor pair, impulse
// generator and controller, and drives them in the fixed per-tick order.
// It is not safe for concurrent use; callers serialize access.
type Device struct {
	heart      *Heart
	monitors   *MonitorPair
	generator  *Generator
	controller *Controller
}

// NewDevice builds a device in its initial persisted state: heart at the
// given rate, generator off, monitors off with minimum readings, controller
// off with defaults.
func NewDevice(initialRate int) *Device {
	return &Device{
		heart:      NewHeart(initialRate),
		monitors:   NewMonitorPair(),
		generator:  &Generator{},
		controller: NewController(),
	}
}

func (d *Device) Heart() *Heart           { return d.heart }
func (d *Device) Monitors() *MonitorPair  { return d.monitors }
func (d *Device) Generator() *Generator   { return d.generator }
func (d *Device) Controller() *Controller { return d.controller }

// chainUp reports whether the sensing and actuation chain (monitor pair and
// generator) is confirmed on.
func (d *Device) chainUp() bool {
	return d.monitors.Status().IsOn && d.generator.State().IsOn
}

// On is the composite activation. Permitted only while the chain is
// confirmed up; it resets the controller to its activation defaults.
// Returns whether the activation was applied.
func (d *Device) On() bool {
	if !d.chainUp() {
		return false
	}
	d.controller.reset()
	return true
}

// Off deactivates the controller, but only while the chain is NOT fully up:
// with both the monitor pair and the generator confirmed on, the controller
// keeps running. The device may only drop out of service when its chain
// already has. Returns whether the deactivation was applied.
func (d *Device) Off() bool {
	if d.chainUp() {
		return false
	}
	d.controller.off()
	return true
}

// Tick advances the whole loop one discrete step: generator, heart,
// monitor, controller, in that order. The controller only steps while it
// and the full chain are on; otherwise the tick is idle for the controller
// and the physical components still advance.
func (d *Device) Tick() TickReport {
	d.generator.Tick(d.heart)
	d.heart.Tick()
	d.monitors.Sample(d.heart.Rate())

	mon := d.monitors.Status()
	if !d.controller.isOn || !mon.IsOn || !d.generator.State().IsOn {
		return TickReport{
			Rate:     mon.Rate,
			PrevMode: d.controller.mode,
			Mode:     d.controller.mode,
			Idle:     true,
		}
	}
	return d.controller.Tick(mon.Rate, d.generator)
}

// State returns a full snapshot of the device.
func (d *Device) State() DeviceState {
	return DeviceState{
		Heart:      d.heart.State(),
		Generator:  d.generator.State(),
		Primary:    d.monitors.Status(),
		Redundant:  d.monitors.RedundantStatus(),
		Controller: d.controller.State(),
	}
}

// Restore overwrites the device from a snapshot.
func (d *Device) Restore(s DeviceState) {
	d.heart.Restore(s.Heart)
	d.generator.Restore(s.Generator)
	d.monitors.Restore(s.Primary, s.Redundant)
	d.controller.Restore(s.Controller)
}
