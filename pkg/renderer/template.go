package renderer

// reportTemplate is the self-contained report document. Chart.js and the
// icon font load from public CDNs; everything else is inline.
const reportTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    {{if .IncludeCharts}}<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>{{end}}
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
    <style>
        :root {
            --bg: #f9fafb; --panel: #ffffff; --text: #111827; --muted: #6b7280;
            --border: #e5e7eb; --pass: #10b981; --fail: #ef4444; --skip: #9ca3af;
            --flaky: #f59e0b;
        }
        [data-theme="dark"] {
            --bg: #111827; --panel: #1f2937; --text: #f9fafb; --muted: #9ca3af;
            --border: #374151;
        }
        @media (prefers-color-scheme: dark) {
            [data-theme="auto"] {
                --bg: #111827; --panel: #1f2937; --text: #f9fafb; --muted: #9ca3af;
                --border: #374151;
            }
        }
        * { box-sizing: border-box; }
        body {
            margin: 0; background: var(--bg); color: var(--text);
            font-family: 'Segoe UI', system-ui, sans-serif;
        }
        header {
            background: var(--panel); border-bottom: 1px solid var(--border);
            padding: 1.25rem 2rem; display: flex; justify-content: space-between;
            align-items: center;
        }
        header h1 { margin: 0; font-size: 1.5rem; }
        header .meta { color: var(--muted); font-size: 0.85rem; margin-top: 0.25rem; }
        .badge {
            padding: 0.25rem 0.75rem; border-radius: 9999px; font-size: 0.85rem;
            font-weight: 600;
        }
        .badge.Excellent, .badge.Good { background: #d1fae5; color: #065f46; }
        .badge.Fair { background: #fef3c7; color: #92400e; }
        .badge.Poor { background: #fee2e2; color: #991b1b; }
        main { max-width: 72rem; margin: 0 auto; padding: 2rem; }
        .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(10rem, 1fr)); gap: 1rem; }
        .card {
            background: var(--panel); border: 1px solid var(--border);
            border-radius: 0.5rem; padding: 1rem 1.25rem;
        }
        .card .num { font-size: 1.75rem; font-weight: 700; }
        .card .label { color: var(--muted); font-size: 0.8rem; text-transform: uppercase; }
        .card.pass .num { color: var(--pass); }
        .card.fail .num { color: var(--fail); }
        .card.skip .num { color: var(--skip); }
        .card.flaky .num { color: var(--flaky); }
        section { margin-top: 2rem; }
        section h2 { font-size: 1.1rem; border-bottom: 1px solid var(--border); padding-bottom: 0.5rem; }
        table { width: 100%; border-collapse: collapse; background: var(--panel); border-radius: 0.5rem; }
        th, td { text-align: left; padding: 0.6rem 0.9rem; border-bottom: 1px solid var(--border); font-size: 0.9rem; }
        th { color: var(--muted); font-size: 0.75rem; text-transform: uppercase; }
        .status { font-weight: 600; }
        .status.passed { color: var(--pass); }
        .status.failed { color: var(--fail); }
        .status.skipped { color: var(--skip); }
        .status.flaky { color: var(--flaky); }
        .error-msg {
            font-family: ui-monospace, monospace; font-size: 0.8rem; color: var(--fail);
            white-space: pre-wrap; word-break: break-word;
        }
        .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
        .chart-box { background: var(--panel); border: 1px solid var(--border); border-radius: 0.5rem; padding: 1rem; }
        footer { color: var(--muted); text-align: center; padding: 2rem; font-size: 0.8rem; }
    </style>
</head>
<body>
    <header>
        <div>
            <h1><i class="fa-solid fa-flask-vial"></i> {{.Title}}</h1>
            <div class="meta">Generated {{formatTimestamp .GeneratedAt}} &middot; Run duration {{formatDuration .Summary.Duration}}</div>
        </div>
        <span class="badge {{.Health}}">{{.Health}} &middot; {{formatRate .Summary.PassRate}}% passed</span>
    </header>
    <main>
        <div class="cards">
            <div class="card"><div class="num">{{.Summary.TotalTests}}</div><div class="label">Total</div></div>
            <div class="card pass"><div class="num">{{.Summary.Passed}}</div><div class="label">Passed</div></div>
            <div class="card fail"><div class="num">{{.Summary.Failed}}</div><div class="label">Failed</div></div>
            <div class="card skip"><div class="num">{{.Summary.Skipped}}</div><div class="label">Skipped</div></div>
            <div class="card flaky"><div class="num">{{.Summary.Flaky}}</div><div class="label">Flaky</div></div>
            <div class="card"><div class="num">{{formatDuration .Summary.Duration}}</div><div class="label">Duration</div></div>
        </div>

        {{if .Summary.SlowestTest}}
        <section>
            <h2><i class="fa-solid fa-gauge-high"></i> Extremes</h2>
            <table>
                <tr><th>Slowest</th><td>{{.Summary.SlowestTest.Name}}</td><td>{{formatDuration .Summary.SlowestTest.Duration}}</td></tr>
                <tr><th>Fastest</th><td>{{.Summary.FastestTest.Name}}</td><td>{{formatDuration .Summary.FastestTest.Duration}}</td></tr>
            </table>
        </section>
        {{end}}

        {{if .IncludeCharts}}
        <section>
            <h2><i class="fa-solid fa-chart-pie"></i> Breakdown</h2>
            <div class="charts">
                <div class="chart-box"><canvas id="statusChart"></canvas></div>
                <div class="chart-box"><canvas id="browserChart"></canvas></div>
                {{if .Summary.ErrorCategories}}<div class="chart-box"><canvas id="errorChart"></canvas></div>{{end}}
                {{if .Trends}}<div class="chart-box"><canvas id="trendChart"></canvas></div>{{end}}
            </div>
        </section>
        {{end}}

        {{if .FailureGroups}}
        <section>
            <h2><i class="fa-solid fa-triangle-exclamation"></i> Failure Groups</h2>
            <table>
                <thead><tr><th>Category</th><th>Count</th><th>Severity</th><th>Sample Error</th><th>Affected Tests</th></tr></thead>
                <tbody>
                {{range .FailureGroups}}
                <tr>
                    <td>{{.Category}}</td>
                    <td>{{.Count}}</td>
                    <td>{{.Severity}}</td>
                    <td><span class="error-msg">{{.SampleError}}</span></td>
                    <td>{{range .AffectedTests}}{{.}}<br>{{end}}</td>
                </tr>
                {{end}}
                </tbody>
            </table>
        </section>
        {{end}}

        <section>
            <h2><i class="fa-solid fa-list-check"></i> Test Results</h2>
            <table>
                <thead><tr><th>Test</th><th>Status</th><th>Browser</th><th>Duration</th><th>Retries</th><th>File</th></tr></thead>
                <tbody>
                {{range .Details}}
                <tr>
                    <td>{{.Name}}{{if .Error}}<div class="error-msg">{{.Error}}</div>{{end}}</td>
                    <td><span class="status {{statusClass .}}">{{.DisplayStatus}}</span></td>
                    <td>{{.Browser}}</td>
                    <td>{{formatDuration .Duration}}</td>
                    <td>{{.Retries}}</td>
                    <td>{{.File}}</td>
                </tr>
                {{end}}
                </tbody>
            </table>
        </section>
    </main>
    <footer>enhanced-html-reporter</footer>

    {{if .IncludeCharts}}
    <script>
        const summary = {{.Summary}};
        const trendData = {{.Trends}};

        new Chart(document.getElementById('statusChart'), {
            type: 'doughnut',
            data: {
                labels: ['Passed', 'Failed', 'Skipped'],
                datasets: [{
                    data: [summary.passed, summary.failed, summary.skipped],
                    backgroundColor: ['#10b981', '#ef4444', '#9ca3af']
                }]
            },
            options: { plugins: { title: { display: true, text: 'Status' } } }
        });

        const browsers = Object.keys(summary.browserStats || {});
        new Chart(document.getElementById('browserChart'), {
            type: 'bar',
            data: {
                labels: browsers,
                datasets: [
                    { label: 'Passed', data: browsers.map(b => summary.browserStats[b].passed), backgroundColor: '#10b981' },
                    { label: 'Failed', data: browsers.map(b => summary.browserStats[b].failed), backgroundColor: '#ef4444' }
                ]
            },
            options: { plugins: { title: { display: true, text: 'Browsers' } }, scales: { x: { stacked: true }, y: { stacked: true } } }
        });

        const errorCanvas = document.getElementById('errorChart');
        if (errorCanvas) {
            const categories = Object.keys(summary.errorCategories || {});
            new Chart(errorCanvas, {
                type: 'pie',
                data: {
                    labels: categories,
                    datasets: [{
                        data: categories.map(c => summary.errorCategories[c]),
                        backgroundColor: ['#ef4444', '#f59e0b', '#3b82f6', '#8b5cf6', '#ec4899', '#6b7280']
                    }]
                },
                options: { plugins: { title: { display: true, text: 'Error Categories' } } }
            });
        }

        const trendCanvas = document.getElementById('trendChart');
        if (trendCanvas && trendData && trendData.length > 0) {
            new Chart(trendCanvas, {
                type: 'line',
                data: {
                    labels: trendData.map(t => new Date(t.timestamp).toLocaleDateString()),
                    datasets: [{
                        label: 'Pass Rate %',
                        data: trendData.map(t => t.passRate),
                        borderColor: '#10b981',
                        tension: 0.3
                    }]
                },
                options: { plugins: { title: { display: true, text: 'Pass Rate Trend' } }, scales: { y: { min: 0, max: 100 } } }
            });
        }
    </script>
    {{end}}
</body>
</html>
`
