package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/yugo1103/motion-primitive-library/docs"
	"github.com/yugo1103/motion-primitive-library/pkg/archive"
	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
	"github.com/yugo1103/motion-primitive-library/pkg/mapio"
	"github.com/yugo1103/motion-primitive-library/pkg/server/rest"
	"github.com/yugo1103/motion-primitive-library/pkg/server/rest/service"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "testdata/default.yaml", "YAML workspace map used by the demo environment")
	archiveDir = flag.String("archive", "", "pebble directory for run persistence; empty disables archiving")
)

//	@title			motion-primitive-library planning demo API
//	@version		1.0
//	@description	weighted A*/LPA* motion-primitive planner demo server

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	spec, err := mapio.Load(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	env := spec.Build()

	var arc *archive.Archive
	if *archiveDir != "" {
		var err error
		arc, err = archive.Open(*archiveDir)
		if err != nil {
			log.Fatal(err)
		}
		defer arc.Close()
	}

	svc := service.NewPlanningService(arc)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	rest.PlannerRouter(r, svc, func() *gridenv.GridEnvironment { return env }, m)

	log.Printf("planserver listening on %s, map=%s", *listenAddr, *mapFile)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
