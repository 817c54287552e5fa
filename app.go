package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/client"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/engine/voxel"
	"github.com/memmaker/landingmarker/game"
	"github.com/pkg/errors"
)

func runPrediction(config game.Config, world *game.World, out resultPrinter) error {
	origin, direction := world.AimRay(config.Scene.Yaw, config.Scene.Pitch)
	marker := game.NewLandingMarker(game.LandingMarkerOptions{
		Rays:         game.NewFixedRaySource(origin, direction),
		Caster:       world.Scene,
		Targets:      world.Targets(),
		Exclude:      world.Exclusions(),
		Simulation:   config.Simulation,
		TargetLeeway: config.TargetLeeway,
		LabelText:    config.Label.Text,
	})
	state, err := marker.Update()
	if err != nil {
		return err
	}
	out.Header()
	out.Print(predictionRow{
		Yaw:      config.Scene.Yaw,
		Pitch:    config.Scene.Pitch,
		Origin:   origin,
		Result:   state.Result,
		OnTarget: state.OnTarget,
		Target:   state.Target.Name,
	})
	return out.Flush()
}

func runSweep(config game.Config, world *game.World, out resultPrinter) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	origin, _ := world.AimRay(config.Sweep.Yaw, 0)
	request := game.SweepRequest{
		Origin:       origin,
		Sweep:        config.Sweep,
		Simulation:   config.Simulation,
		TargetLeeway: config.TargetLeeway,
		Exclude:      ballistics.NewExclusionSet(world.Exclusions()...),
	}
	samples, err := game.PredictSweep(ctx, request, world.Scene, world.Targets())
	if err != nil {
		return errors.Wrap(err, "sweep")
	}
	out.Header()
	for _, sample := range samples {
		out.Print(predictionRow{
			Yaw:      config.Sweep.Yaw,
			Pitch:    sample.Pitch,
			Origin:   origin,
			Result:   sample.Result,
			OnTarget: sample.OnTarget,
			Target:   sample.Target.Name,
		})
	}
	return out.Flush()
}

func runExport(config game.Config, sceneFilename, mapFilename string) error {
	desc := game.DefaultSceneDescription()
	if config.Scene.File != "" {
		loaded, err := voxel.LoadSceneDescription(config.Scene.File)
		if err != nil {
			return err
		}
		desc = loaded
	}
	if sceneFilename != "" {
		file, err := os.Create(sceneFilename)
		if err != nil {
			return errors.Wrapf(err, "create %s", sceneFilename)
		}
		if err = voxel.WriteSceneDescription(file, desc); err != nil {
			file.Close()
			return errors.Wrapf(err, "write %s", sceneFilename)
		}
		if err = file.Close(); err != nil {
			return err
		}
		util.LogIOInfo("[Export] scene written to " + sceneFilename)
	}
	if mapFilename != "" {
		if err := desc.BuildMap().SaveToDisk(mapFilename); err != nil {
			return err
		}
		util.LogIOInfo("[Export] map written to " + mapFilename)
	}
	return nil
}

const (
	patrolDistance = 6.0
	patrolDuration = 3.0
)

// runWindow places the camera behind and above the thrower looking along +Z.
func runWindow(config game.Config) error {
	world, err := game.LoadWorldFromConfig(config.Scene)
	if err != nil {
		return err
	}
	eye, direction := world.AimRay(config.Scene.Yaw, config.Scene.Pitch)
	cameraPosition := eye.Sub(direction.Mul(4)).Add(mgl64.Vec3{0, 2, 0})
	camera := util.NewPerspectiveCamera(cameraPosition, eye.Add(direction.Mul(20)), config.Window.Width, config.Window.Height)
	cursor := client.NewCursorRaySource(camera, config.Window.Width, config.Window.Height)

	clock := game.NewFrameClock()
	for _, actor := range world.Registry.Actors() {
		if actor == world.Thrower {
			continue
		}
		start := actor.GetPosition()
		game.NewPatrol(actor, start, start.Add(mgl64.Vec3{patrolDistance, 0, 0}), patrolDuration).Start(clock)
	}
	label := game.NewBillboardLabel(config.Label.PixelsPerUnit, mgl64.Vec3{0, config.Label.Height, 0})
	node := game.NewMarkerNode(world.Scene, config.Label.MarkerSize, label)
	marker := game.NewLandingMarker(game.LandingMarkerOptions{
		Clock:        clock,
		Rays:         cursor,
		Caster:       world.Scene,
		Targets:      world.Targets(),
		View:         node,
		Exclude:      world.Exclusions(),
		Simulation:   config.Simulation,
		TargetLeeway: config.TargetLeeway,
		LabelText:    config.Label.Text,
	})
	marker.Enable()

	win, err := client.NewWindow(config.Window, clock, marker, cursor)
	if err != nil {
		return err
	}
	win.Run()
	util.LogSystemInfo(fmt.Sprintf("[Window] %s", marker.Timer().String()))
	return nil
}
