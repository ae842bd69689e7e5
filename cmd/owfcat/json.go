package main

import "github.com/numinit/open-waveform-format/owf"

// The JSON shape below is this CLI's own interchange format, not part of
// the wire protocol; it exists so owfcat's encode/decode subcommands have
// a human-editable source and sink for OWF packets.

type jsonSignal struct {
	ID      string    `json:"id"`
	Unit    string    `json:"unit"`
	Samples []float64 `json:"samples"`
}

type jsonEvent struct {
	T0      int64  `json:"t0"`
	Message string `json:"message"`
}

type jsonAlarm struct {
	T0      int64  `json:"t0"`
	Dt      int64  `json:"dt"`
	Level   uint8  `json:"level"`
	Volume  uint8  `json:"volume"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonNamespace struct {
	ID      string       `json:"id"`
	T0      int64        `json:"t0"`
	Dt      uint64       `json:"dt"`
	Signals []jsonSignal `json:"signals,omitempty"`
	Events  []jsonEvent  `json:"events,omitempty"`
	Alarms  []jsonAlarm  `json:"alarms,omitempty"`
}

type jsonChannel struct {
	ID         string          `json:"id"`
	Namespaces []jsonNamespace `json:"namespaces,omitempty"`
}

type jsonPackage struct {
	Channels []jsonChannel `json:"channels,omitempty"`
}

func (jp jsonPackage) toPackage() (*owf.Package, error) {
	pkg := owf.NewPackage()
	for _, jc := range jp.Channels {
		ch := owf.NewChannel(jc.ID)
		for _, jn := range jc.Namespaces {
			ns := owf.NewNamespace(jn.ID, jn.T0, jn.Dt)
			for _, js := range jn.Signals {
				sig := owf.NewSignal(js.ID, js.Unit)
				sig.PushSamples(js.Samples)
				ns.PushSignal(sig)
			}
			for _, je := range jn.Events {
				if err := ns.PushEvent(owf.NewEvent(je.T0, je.Message)); err != nil {
					return nil, err
				}
			}
			for _, ja := range jn.Alarms {
				alarm := owf.NewAlarm(ja.T0, ja.Dt, ja.Level, ja.Volume, ja.Type, ja.Message)
				if err := ns.PushAlarm(alarm); err != nil {
					return nil, err
				}
			}
			ch.PushNamespace(ns)
		}
		pkg.PushChannel(ch)
	}
	return pkg, nil
}

func fromPackage(pkg *owf.Package) jsonPackage {
	jp := jsonPackage{}
	for _, ch := range pkg.Channels() {
		jc := jsonChannel{ID: ch.ID().String()}
		for _, ns := range ch.Namespaces() {
			jn := jsonNamespace{ID: ns.ID().String(), T0: ns.T0, Dt: ns.Dt}
			for _, sig := range ns.Signals() {
				jn.Signals = append(jn.Signals, jsonSignal{
					ID: sig.ID().String(), Unit: sig.Unit().String(), Samples: sig.Samples(),
				})
			}
			for _, ev := range ns.Events() {
				jn.Events = append(jn.Events, jsonEvent{T0: ev.T0, Message: ev.Message().String()})
			}
			for _, al := range ns.Alarms() {
				jn.Alarms = append(jn.Alarms, jsonAlarm{
					T0: al.T0, Dt: al.Dt, Level: al.Level, Volume: al.Volume,
					Type: al.Type().String(), Message: al.Message().String(),
				})
			}
			jc.Namespaces = append(jc.Namespaces, jn)
		}
		jp.Channels = append(jp.Channels, jc)
	}
	return jp
}
