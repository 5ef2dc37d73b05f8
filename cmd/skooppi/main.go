package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"gioui.org/app"
	"gopkg.in/yaml.v3"

	"github.com/vtervo/skooppi"
	"github.com/vtervo/skooppi/oto"
	"github.com/vtervo/skooppi/scope"
	"github.com/vtervo/skooppi/scope/gioui"
	"github.com/vtervo/skooppi/signal"
	"github.com/vtervo/skooppi/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var sampleRate = flag.Int("samplerate", 44100, "sample rate of the audio output")
var versionFlag = flag.Bool("v", false, "print version and exit")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}

	// the signal fed to both the audio output and the scope comes from a
	// patch file, or a plain sine when no file is given
	patch := signal.DefaultPatch()
	if a := flag.Args(); len(a) > 0 {
		inputBytes, err := os.ReadFile(a[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read patch file %v: %v\n", a[0], err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(inputBytes, &patch); err != nil {
			fmt.Fprintf(os.Stderr, "could not parse patch file %v: %v\n", a[0], err)
			os.Exit(1)
		}
	}

	audioContext, err := oto.NewContext(*sampleRate)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var tap skooppi.Tap
	generator := signal.NewGenerator(patch, float32(*sampleRate))
	audioCloser := audioContext.Play(skooppi.Tee(generator, &tap))

	broker := scope.NewBroker()
	osc := scope.NewOscilloscope(broker, &tap, float32(*sampleRate))

	theme, warn := gioui.NewTheme()
	if warn != nil {
		log.Printf("theme: %v", warn)
	}
	view := gioui.NewScopeView(theme, osc)

	go func() {
		view.Main(broker)
		osc.Close()
		audioCloser.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		os.Exit(0)
	}()
	app.Main()
}
