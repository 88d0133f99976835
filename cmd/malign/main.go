package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/guigolab/malign"
	"github.com/guigolab/malign/catalog"
	"github.com/guigolab/malign/config"
	"github.com/guigolab/malign/regions"
	"github.com/guigolab/malign/server"
	"github.com/guigolab/malign/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	subject, query, loglevel, output, chrom, regionsFile string
	port, cpu, start, end                                int
	sortBlocks                                           bool
	chroms                                               []string
)

func setup(cmd *cobra.Command, args []string) (cfg *config.Config, cat *catalog.Catalog, err error) {
	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)
	log.WithFields(log.Fields{
		"version": malign.Version(),
	}).Infof("Running %s", cmd.CommandPath())
	log.Infof("Using %v out of %v logical CPUs", cpu, runtime.NumCPU())
	cfg = config.NewConfig(args[0], subject, query, port, cpu, sortBlocks)
	cat, err = malign.NewCatalog(cfg)
	return
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, cat, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(cat)
	log.Infof("Server started on port %d", cfg.Port)
	return router.Run(fmt.Sprintf(":%d", cfg.Port))
}

func runQuery(cmd *cobra.Command, args []string) error {
	_, cat, err := setup(cmd, args)
	if err != nil {
		return err
	}
	var regs []regions.Region
	switch {
	case regionsFile != "":
		if regs, err = regions.ReadFile(regionsFile); err != nil {
			return err
		}
	case chrom != "":
		if start >= end {
			return fmt.Errorf("start %d must be less than end %d", start, end)
		}
		regs = append(regs, regions.NewRegion(chrom, start, end, ""))
	default:
		return errors.New("either --regions or --chrom, --start and --end are required")
	}
	return writeOutput(malign.Query(cat, regs))
}

func runStats(cmd *cobra.Command, args []string) error {
	_, cat, err := setup(cmd, args)
	if err != nil {
		return err
	}
	sm, err := malign.Load(cat, chroms, cpu)
	if err != nil {
		return err
	}
	return writeOutput(struct {
		Chromosomes interface{} `json:"chromosomes"`
		Total       interface{} `json:"total"`
	}{sm, sm.Total()})
}

func writeOutput(v interface{}) error {
	w, err := utils.NewOutput(output)
	if err != nil {
		return err
	}
	if err := utils.OutputJSON(w, v); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func setMalignFlags(c *cobra.Command) {
	c.PersistentFlags().StringVarP(&subject, "subject", "s", config.DefaultSubject, "subject assembly id")
	c.PersistentFlags().StringVarP(&query, "query", "q", config.DefaultQuery, "query assembly id")
	c.PersistentFlags().StringVarP(&loglevel, "loglevel", "", "warn", "logging level")
	c.PersistentFlags().IntVarP(&cpu, "cpu", "c", runtime.NumCPU(), "number of cpus to be used")
	c.PersistentFlags().BoolVarP(&sortBlocks, "sort", "", false, "sort alignment blocks by subject start after loading")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "malign",
		Short:   "Pairwise alignment conversion",
		Long:    "malign - convert reference coordinates into aligned subject and query sequences",
		Version: malign.Version(),
	}
	var serveCmd = &cobra.Command{
		Use:   "serve MAFDIR",
		Short: "Serve alignments over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE:  serve,
	}
	serveCmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "server port")

	var queryCmd = &cobra.Command{
		Use:   "query MAFDIR",
		Short: "Print the alignment of one or more regions",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	queryCmd.Flags().StringVarP(&chrom, "chrom", "", "", "chromosome")
	queryCmd.Flags().IntVarP(&start, "start", "", 0, "zero based start")
	queryCmd.Flags().IntVarP(&end, "end", "", 0, "zero based end")
	queryCmd.Flags().StringVarP(&regionsFile, "regions", "r", "", "BED file of regions")
	queryCmd.Flags().StringVarP(&output, "output", "o", "-", "output file")

	var statsCmd = &cobra.Command{
		Use:   "stats MAFDIR",
		Short: "Load chromosomes and print load statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().StringSliceVarP(&chroms, "chrom", "", nil, "chromosomes to load (default all)")
	statsCmd.Flags().StringVarP(&output, "output", "o", "-", "output file")

	setMalignFlags(rootCmd)
	rootCmd.AddCommand(serveCmd, queryCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Debug(err)
	}
}
