// Package pkg provides the libraries behind scenelaunch, the launcher for the
// Vulkan scene renderer.
//
// # Overview
//
// Scenelaunch turns a handful of rendering-quality choices into the
// renderer's positional command line, starts the renderer and streams its
// output back to whoever asked. The pkg directory is organized as:
//
//  1. [settings] - The settings model and quality tier tables
//  2. [args] - Positional argument encoding
//  3. [launcher] - Renderer process creation and termination
//  4. [relay] - Line-by-line output forwarding and sinks
//  5. [pipeline] - Orchestration (snapshot → encode → start → relay)
//
// Supporting packages: [errors] for coded errors, [observability] for launch
// hooks and [buildinfo] for version stamping.
//
// # Architecture
//
//	UI setter calls
//	      ↓
//	[settings] Model.Snapshot
//	      ↓
//	[args] Encode → ["4", "2048", "10", "1", "Dusk", "1", "0", "0", "1"]
//	      ↓
//	[launcher] Start (no shell)
//	      ↓
//	[relay] stdout lines → Sink
//
// # Quick Start
//
//	m := settings.New()
//	_ = m.SetAntiAliasingLabel("4x")
//	_ = m.SetShadowQuality(settings.QualityMedium)
//	m.SetAmbientOcclusion(true)
//	m.SetLighting("Dusk")
//
//	run, err := pipeline.NewRunner(logger).Launch(ctx, m.Snapshot(),
//	    pipeline.Options{Renderer: "VulkanScene.exe"},
//	    pipeline.Events{Sink: relay.NewWriterSink(os.Stdout)})
//	if err != nil {
//	    return err
//	}
//	exit := run.Wait()
package pkg
