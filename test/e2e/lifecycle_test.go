//go:build e2e

package e2e

import (
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sliceops/slicectl/internal/config"
	"github.com/sliceops/slicectl/internal/kubeslice"
	"github.com/sliceops/slicectl/internal/orchestration"
	"github.com/sliceops/slicectl/internal/platform/linode"
)

var _ = Describe("full deployment lifecycle", Ordered, func() {
	var (
		cfg      *config.Config
		clusters *linode.RealClient
	)

	BeforeAll(func() {
		cfg = &config.Config{
			Project:           fmt.Sprintf("e2e-%d", time.Now().Unix()%100000),
			Region:            "us-east",
			KubernetesVersion: "1.31",
			Controller: config.ControllerConfig{
				NodeType:  "g6-standard-2",
				NodeCount: 1,
			},
			Workers: map[string]config.WorkerConfig{
				"alpha": {
					Region:           "us-east",
					WorkerNodeType:   "g6-standard-4",
					WorkerNodeCount:  1,
					GatewayNodeType:  "g6-standard-2",
					GatewayNodeCount: 1,
					Frontend:         true,
					Backend:          true,
				},
			},
			Application: config.ApplicationConfig{Enabled: false},
			Slice:       config.SliceConfig{Subnet: "10.11.0.0/16", MaxClusters: 10},
		}
		Expect(cfg.Validate()).To(Succeed())

		clusters = linode.NewRealClient(os.Getenv(config.EnvLinodeToken))
	})

	AfterAll(func(ctx SpecContext) {
		// Belt and braces: delete anything the destroy spec missed.
		for _, tag := range []string{kubeslice.WorkerTag, kubeslice.ControllerTag} {
			found, err := clusters.ListClustersByTag(ctx, tag)
			if err != nil {
				continue
			}
			for _, cluster := range found {
				_ = clusters.DeleteCluster(ctx, cluster.ID)
			}
		}
	}, NodeTimeout(15*time.Minute))

	It("provisions the controller and worker clusters", func(ctx SpecContext) {
		reconciler := orchestration.NewReconciler(cfg, clusters)
		Expect(reconciler.Apply(ctx)).To(Succeed())
	}, SpecTimeout(90*time.Minute))

	It("tags the clusters so they can be discovered", func(ctx SpecContext) {
		controllers, err := clusters.ListClustersByTag(ctx, kubeslice.ControllerTag)
		Expect(err).NotTo(HaveOccurred())
		Expect(controllers).To(HaveLen(1))
		Expect(controllers[0].Label).To(Equal(kubeslice.ControllerClusterLabel))

		workers, err := clusters.ListClustersByTag(ctx, kubeslice.WorkerTag)
		Expect(err).NotTo(HaveOccurred())
		Expect(workers).To(HaveLen(len(cfg.Workers)))
	}, SpecTimeout(5*time.Minute))

	It("is idempotent on re-apply", func(ctx SpecContext) {
		reconciler := orchestration.NewReconciler(cfg, clusters)
		Expect(reconciler.Apply(ctx)).To(Succeed())

		controllers, err := clusters.ListClustersByTag(ctx, kubeslice.ControllerTag)
		Expect(err).NotTo(HaveOccurred())
		Expect(controllers).To(HaveLen(1))
	}, SpecTimeout(30*time.Minute))

	It("destroys every cluster of the deployment", func(ctx SpecContext) {
		reconciler := orchestration.NewReconciler(cfg, clusters)
		Expect(reconciler.Destroy(ctx)).To(Succeed())

		Eventually(func(g Gomega) {
			for _, tag := range []string{kubeslice.WorkerTag, kubeslice.ControllerTag} {
				found, err := clusters.ListClustersByTag(ctx, tag)
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(found).To(BeEmpty())
			}
		}).WithTimeout(10 * time.Minute).WithPolling(15 * time.Second).Should(Succeed())
	}, SpecTimeout(20*time.Minute))
})
